package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository"
	"github.com/designclub49123/kalakranti/internal/service"
)

type fakeStallRepo struct {
	stalls    map[uint]domain.Stall
	nextID    uint
	createErr error

	lastMemberIDs   []uint
	lastLeaderPhone string
}

func newFakeStallRepo() *fakeStallRepo {
	return &fakeStallRepo{stalls: make(map[uint]domain.Stall)}
}

func (f *fakeStallRepo) Create(_ context.Context, stall domain.Stall, memberIDs []uint, leaderPhone string) (domain.Stall, error) {
	if f.createErr != nil {
		return domain.Stall{}, f.createErr
	}

	f.nextID++
	stall.ID = f.nextID
	f.stalls[stall.ID] = stall
	f.lastMemberIDs = memberIDs
	f.lastLeaderPhone = leaderPhone

	return stall, nil
}

func (f *fakeStallRepo) FindByID(_ context.Context, id uint) (domain.Stall, error) {
	stall, ok := f.stalls[id]
	if !ok {
		return domain.Stall{}, repository.ErrStallNotFound
	}

	return stall, nil
}

func (f *fakeStallRepo) FindByLeaderID(_ context.Context, leaderID uint) ([]domain.Stall, error) {
	var stalls []domain.Stall
	for _, s := range f.stalls {
		if s.LeaderID == leaderID {
			stalls = append(stalls, s)
		}
	}

	return stalls, nil
}

func (f *fakeStallRepo) List(_ context.Context, _ domain.StallFilter) ([]domain.StallSummary, error) {
	summaries := make([]domain.StallSummary, 0, len(f.stalls))
	for _, s := range f.stalls {
		summaries = append(summaries, domain.StallSummary{
			ID:      s.ID,
			EventID: s.EventID,
			Name:    s.Name,
			Status:  s.Status,
		})
	}

	return summaries, nil
}

func (f *fakeStallRepo) UpdateStatusFromPending(_ context.Context, id uint, status domain.StallStatus, approvedAt *time.Time) (domain.Stall, error) {
	stall, ok := f.stalls[id]
	if !ok {
		return domain.Stall{}, repository.ErrStallNotFound
	}
	if stall.Status != domain.StallPending {
		return domain.Stall{}, repository.ErrStallNotPending
	}

	stall.Status = status
	stall.ApprovedAt = approvedAt
	f.stalls[id] = stall

	return stall, nil
}

func (f *fakeStallRepo) SetNumber(_ context.Context, id uint, number int) (domain.Stall, error) {
	stall, ok := f.stalls[id]
	if !ok {
		return domain.Stall{}, repository.ErrStallNotFound
	}
	if stall.Status != domain.StallApproved {
		return domain.Stall{}, repository.ErrStallNotApproved
	}
	for _, other := range f.stalls {
		if other.ID != id && other.EventID == stall.EventID &&
			other.StallNumber != nil && *other.StallNumber == number {
			return domain.Stall{}, repository.ErrStallNumberTaken
		}
	}

	stall.StallNumber = &number
	f.stalls[id] = stall

	return stall, nil
}

type fakeProfileRepo struct {
	byEmail map[string]domain.Profile
}

func (f *fakeProfileRepo) FindByEmail(_ context.Context, email string) (domain.Profile, error) {
	profile, ok := f.byEmail[email]
	if !ok {
		return domain.Profile{}, repository.ErrProfileNotFound
	}

	return profile, nil
}

type fakeEventRepo struct {
	events map[uint]domain.Event
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

type recordedAudit struct {
	userID uint
	action string
}

type fakeAudit struct {
	entries []recordedAudit
}

func (f *fakeAudit) Record(_ context.Context, userID uint, action string, _ map[string]interface{}) {
	f.entries = append(f.entries, recordedAudit{userID: userID, action: action})
}

func openEvent(id uint) domain.Event {
	return domain.Event{
		ID:               id,
		Name:             "Tech Fest",
		StartDate:        time.Now().AddDate(0, 0, 1),
		EndDate:          time.Now().AddDate(0, 0, 3),
		RegistrationOpen: true,
	}
}

func newStallFixture() (*service.StallService, *fakeStallRepo, *fakeProfileRepo, *fakeEventRepo, *fakeAudit) {
	stallRepo := newFakeStallRepo()
	profileRepo := &fakeProfileRepo{byEmail: map[string]domain.Profile{
		"alice@example.com": {ID: 2, Email: "alice@example.com"},
		"bob@example.com":   {ID: 3, Email: "bob@example.com"},
	}}
	eventRepo := &fakeEventRepo{events: map[uint]domain.Event{1: openEvent(1)}}
	audit := &fakeAudit{}

	svc := service.NewStallService(stallRepo, profileRepo, eventRepo, audit)

	return svc, stallRepo, profileRepo, eventRepo, audit
}

var (
	leader   = domain.Actor{UserID: 1, Role: domain.RoleStudent}
	reviewer = domain.Actor{UserID: 9, Role: domain.RoleJuniorAdmin}
	admin    = domain.Actor{UserID: 10, Role: domain.RoleAdmin}
)

func TestStallService_RegisterStall(t *testing.T) {
	t.Run("registers a pending stall with resolved members", func(t *testing.T) {
		svc, stallRepo, _, _, audit := newStallFixture()

		stall, err := svc.RegisterStall(context.Background(), leader, domain.Stall{
			EventID: 1,
			Name:    "Robo Wars",
		}, []string{"alice@example.com", "bob@example.com"}, "+911234567890")

		require.NoError(t, err)
		assert.Equal(t, domain.StallPending, stall.Status)
		assert.Equal(t, leader.UserID, stall.LeaderID)
		assert.WithinDuration(t, time.Now(), stall.AppliedAt, time.Second)
		assert.Equal(t, []uint{2, 3}, stallRepo.lastMemberIDs)
		assert.Equal(t, "+911234567890", stallRepo.lastLeaderPhone)
		require.Len(t, audit.entries, 1)
		assert.Equal(t, "stall.registered", audit.entries[0].action)
	})

	t.Run("resolves member emails regardless of case", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()

		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 1, Name: "Robo Wars"},
			[]string{"Alice@Example.com"}, "+911234567890")

		require.NoError(t, err)
		assert.Equal(t, []uint{2}, stallRepo.lastMemberIDs)
	})

	t.Run("aborts on the first unknown member email", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()

		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 1, Name: "Robo Wars"},
			[]string{"alice@example.com", "ghost@example.com"}, "+911234567890")

		var memberErr *service.MemberNotFoundError
		require.ErrorAs(t, err, &memberErr)
		assert.Equal(t, "ghost@example.com", memberErr.Email)
		assert.Empty(t, stallRepo.stalls)
	})

	t.Run("unknown member errors keep the email as typed", func(t *testing.T) {
		svc, _, _, _, _ := newStallFixture()

		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 1, Name: "Robo Wars"},
			[]string{" Ghost@Example.com "}, "+911234567890")

		var memberErr *service.MemberNotFoundError
		require.ErrorAs(t, err, &memberErr)
		assert.Equal(t, "Ghost@Example.com", memberErr.Email)
	})

	t.Run("rejects the leader listing themselves", func(t *testing.T) {
		svc, _, profileRepo, _, _ := newStallFixture()
		profileRepo.byEmail["leader@example.com"] = domain.Profile{ID: leader.UserID}

		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 1, Name: "Robo Wars"},
			[]string{"leader@example.com"}, "+911234567890")

		assert.ErrorIs(t, err, service.ErrSelfAsMember)
	})

	t.Run("rejects duplicate member emails", func(t *testing.T) {
		svc, _, _, _, _ := newStallFixture()

		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 1, Name: "Robo Wars"},
			[]string{"alice@example.com", "ALICE@example.com "}, "+911234567890")

		assert.ErrorIs(t, err, service.ErrDuplicateMember)
	})

	t.Run("rejects oversized teams", func(t *testing.T) {
		svc, _, _, _, _ := newStallFixture()

		emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"}
		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 1, Name: "Robo Wars"},
			emails, "+911234567890")

		assert.ErrorIs(t, err, service.ErrTooManyMembers)
	})

	t.Run("rejects events not accepting registrations", func(t *testing.T) {
		svc, _, _, eventRepo, _ := newStallFixture()
		closed := openEvent(2)
		closed.RegistrationOpen = false
		eventRepo.events[2] = closed

		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 2, Name: "Robo Wars"},
			nil, "+911234567890")

		assert.ErrorIs(t, err, service.ErrEventClosed)
	})

	t.Run("rejects events that already ended", func(t *testing.T) {
		svc, _, _, eventRepo, _ := newStallFixture()
		ended := openEvent(3)
		ended.EndDate = time.Now().AddDate(0, 0, -2)
		eventRepo.events[3] = ended

		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 3, Name: "Robo Wars"},
			nil, "+911234567890")

		assert.ErrorIs(t, err, service.ErrEventClosed)
	})

	t.Run("rejects unknown events", func(t *testing.T) {
		svc, _, _, _, _ := newStallFixture()

		_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 99, Name: "Robo Wars"},
			nil, "+911234567890")

		assert.ErrorIs(t, err, service.ErrEventNotFound)
	})
}

func TestStallService_DecideStall(t *testing.T) {
	seedPending := func(repo *fakeStallRepo) uint {
		repo.nextID++
		repo.stalls[repo.nextID] = domain.Stall{
			ID:       repo.nextID,
			EventID:  1,
			LeaderID: leader.UserID,
			Name:     "Robo Wars",
			Status:   domain.StallPending,
		}

		return repo.nextID
	}

	t.Run("students cannot decide", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seedPending(stallRepo)

		_, err := svc.DecideStall(context.Background(), leader, id, domain.StallApproved)

		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("approval stamps the decision time", func(t *testing.T) {
		svc, stallRepo, _, _, audit := newStallFixture()
		id := seedPending(stallRepo)

		stall, err := svc.DecideStall(context.Background(), reviewer, id, domain.StallApproved)

		require.NoError(t, err)
		assert.Equal(t, domain.StallApproved, stall.Status)
		require.NotNil(t, stall.ApprovedAt)
		assert.WithinDuration(t, time.Now(), *stall.ApprovedAt, time.Second)
		require.Len(t, audit.entries, 1)
		assert.Equal(t, "stall.approved", audit.entries[0].action)
	})

	t.Run("rejection leaves no decision time", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seedPending(stallRepo)

		stall, err := svc.DecideStall(context.Background(), admin, id, domain.StallRejected)

		require.NoError(t, err)
		assert.Equal(t, domain.StallRejected, stall.Status)
		assert.Nil(t, stall.ApprovedAt)
	})

	t.Run("decided stalls stay decided", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seedPending(stallRepo)

		_, err := svc.DecideStall(context.Background(), reviewer, id, domain.StallApproved)
		require.NoError(t, err)

		_, err = svc.DecideStall(context.Background(), reviewer, id, domain.StallRejected)
		assert.ErrorIs(t, err, service.ErrStallNotPending)

		stall := stallRepo.stalls[id]
		assert.Equal(t, domain.StallApproved, stall.Status)
	})

	t.Run("only approved and rejected are valid decisions", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seedPending(stallRepo)

		_, err := svc.DecideStall(context.Background(), reviewer, id, domain.StallPending)

		assert.ErrorIs(t, err, service.ErrInvalidDecision)
	})

	t.Run("unknown stalls report not found", func(t *testing.T) {
		svc, _, _, _, _ := newStallFixture()

		_, err := svc.DecideStall(context.Background(), reviewer, 404, domain.StallApproved)

		assert.ErrorIs(t, err, service.ErrStallNotFound)
	})
}

func TestStallService_AssignStallNumber(t *testing.T) {
	seed := func(repo *fakeStallRepo, status domain.StallStatus) uint {
		repo.nextID++
		repo.stalls[repo.nextID] = domain.Stall{
			ID:      repo.nextID,
			EventID: 1,
			Status:  status,
		}

		return repo.nextID
	}

	t.Run("assigns a number to an approved stall", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seed(stallRepo, domain.StallApproved)

		stall, err := svc.AssignStallNumber(context.Background(), reviewer, id, 7)

		require.NoError(t, err)
		require.NotNil(t, stall.StallNumber)
		assert.Equal(t, 7, *stall.StallNumber)
	})

	t.Run("pending stalls cannot receive a number", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seed(stallRepo, domain.StallPending)

		_, err := svc.AssignStallNumber(context.Background(), reviewer, id, 7)

		assert.ErrorIs(t, err, service.ErrStallNotApproved)
	})

	t.Run("numbers are unique within an event", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		first := seed(stallRepo, domain.StallApproved)
		second := seed(stallRepo, domain.StallApproved)

		_, err := svc.AssignStallNumber(context.Background(), reviewer, first, 7)
		require.NoError(t, err)

		_, err = svc.AssignStallNumber(context.Background(), reviewer, second, 7)
		assert.ErrorIs(t, err, service.ErrStallNumberTaken)
	})

	t.Run("reassigning the same stall is allowed", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seed(stallRepo, domain.StallApproved)

		_, err := svc.AssignStallNumber(context.Background(), reviewer, id, 7)
		require.NoError(t, err)

		stall, err := svc.AssignStallNumber(context.Background(), reviewer, id, 8)
		require.NoError(t, err)
		assert.Equal(t, 8, *stall.StallNumber)
	})

	t.Run("numbers must be positive", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seed(stallRepo, domain.StallApproved)

		_, err := svc.AssignStallNumber(context.Background(), reviewer, id, 0)

		assert.ErrorIs(t, err, service.ErrInvalidStallNum)
	})

	t.Run("students cannot assign numbers", func(t *testing.T) {
		svc, stallRepo, _, _, _ := newStallFixture()
		id := seed(stallRepo, domain.StallApproved)

		_, err := svc.AssignStallNumber(context.Background(), leader, id, 7)

		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestStallService_GetStall(t *testing.T) {
	svc, stallRepo, _, _, _ := newStallFixture()
	stallRepo.stalls[1] = domain.Stall{ID: 1, LeaderID: leader.UserID, Status: domain.StallPending}

	t.Run("leaders can view their own stall", func(t *testing.T) {
		stall, err := svc.GetStall(context.Background(), leader, 1)

		require.NoError(t, err)
		assert.Equal(t, uint(1), stall.ID)
	})

	t.Run("other students are denied", func(t *testing.T) {
		other := domain.Actor{UserID: 42, Role: domain.RoleStudent}

		_, err := svc.GetStall(context.Background(), other, 1)

		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("reviewers can view any stall", func(t *testing.T) {
		_, err := svc.GetStall(context.Background(), reviewer, 1)

		assert.NoError(t, err)
	})
}

func TestStallService_ListStalls(t *testing.T) {
	svc, _, _, _, _ := newStallFixture()

	_, err := svc.ListStalls(context.Background(), leader, domain.StallFilter{})

	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestStallService_RegisterStall_RepoFailure(t *testing.T) {
	svc, stallRepo, _, _, _ := newStallFixture()
	stallRepo.createErr = errors.New("connection reset")

	_, err := svc.RegisterStall(context.Background(), leader, domain.Stall{EventID: 1, Name: "Robo Wars"},
		nil, "+911234567890")

	assert.ErrorContains(t, err, "s.repo.Create")
}
