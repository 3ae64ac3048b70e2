package barter

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/apperrors"
	domainBarter "github.com/prashana14/StudyReuse-sub000/internal/domain/barter"
	barterMocks "github.com/prashana14/StudyReuse-sub000/internal/domain/barter/mocks"
	domainItem "github.com/prashana14/StudyReuse-sub000/internal/domain/item"
	itemMocks "github.com/prashana14/StudyReuse-sub000/internal/domain/item/mocks"
	"github.com/prashana14/StudyReuse-sub000/internal/domain/notification"
	notificationMocks "github.com/prashana14/StudyReuse-sub000/internal/domain/notification/mocks"
	userMocks "github.com/prashana14/StudyReuse-sub000/internal/domain/user/mocks"
)

type serviceFixture struct {
	service    *Service
	barterRepo *barterMocks.MockRepository
	itemRepo   *itemMocks.MockRepository
	userRepo   *userMocks.MockRepository
	emitter    *notificationMocks.MockEmitter
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)
	f := &serviceFixture{
		barterRepo: barterMocks.NewMockRepository(ctrl),
		itemRepo:   itemMocks.NewMockRepository(ctrl),
		userRepo:   userMocks.NewMockRepository(ctrl),
		emitter:    notificationMocks.NewMockEmitter(ctrl),
	}
	f.service = NewService(f.barterRepo, f.itemRepo, f.userRepo, f.emitter, zerolog.Nop())
	return f
}

func availableItem(ownerID uuid.UUID, title string) *domainItem.Item {
	return &domainItem.Item{
		ItemID:  uuid.New(),
		OwnerID: ownerID,
		Title:   title,
		Status:  domainItem.StatusAvailable,
	}
}

func pendingRequest(requesterID, ownerID uuid.UUID) *domainBarter.BarterRequest {
	return domainBarter.NewBarterRequest(uuid.New(), uuid.New(), requesterID, ownerID, "swap?")
}

func TestService_Propose(t *testing.T) {
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), Username: "alice"}
	ownerID := uuid.New()

	t.Run("success with default message", func(t *testing.T) {
		f := newServiceFixture(t)
		target := availableItem(ownerID, "Calculus Textbook")
		offered := availableItem(actor.UserID, "Physics Notes")

		f.itemRepo.EXPECT().GetByID(ctx, target.ItemID).Return(target, nil)
		f.itemRepo.EXPECT().GetByID(ctx, offered.ItemID).Return(offered, nil)
		f.barterRepo.EXPECT().ExistsPending(ctx, target.ItemID, offered.ItemID, actor.UserID).Return(false, nil)
		f.barterRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		f.userRepo.EXPECT().GetByID(ctx, actor.UserID).Return(nil, nil)
		f.userRepo.EXPECT().GetByID(ctx, ownerID).Return(nil, nil)
		f.emitter.EXPECT().Emit(ctx, gomock.Any()).Do(func(_ context.Context, n *notification.Notification) {
			assert.Equal(t, ownerID, n.RecipientID)
			assert.Equal(t, notification.CategoryBarterProposed, n.Category)
		})

		b, err := f.service.Propose(ctx, actor, target.ItemID, offered.ItemID, "")
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, domainBarter.StatusPending, b.Status)
		assert.Equal(t, actor.UserID, b.RequesterID)
		assert.Equal(t, ownerID, b.OwnerID)
		assert.Equal(t, `Exchange "Physics Notes" for "Calculus Textbook"`, b.Message)
		assert.Same(t, target, b.Item)
		assert.Same(t, offered, b.OfferItem)
	})

	t.Run("target item missing", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		f.itemRepo.EXPECT().GetByID(ctx, itemID).Return(nil, nil)

		_, err := f.service.Propose(ctx, actor, itemID, uuid.New(), "")
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run("offer item not owned by requester", func(t *testing.T) {
		f := newServiceFixture(t)
		target := availableItem(ownerID, "Target")
		offered := availableItem(uuid.New(), "Someone else's")
		f.itemRepo.EXPECT().GetByID(ctx, target.ItemID).Return(target, nil)
		f.itemRepo.EXPECT().GetByID(ctx, offered.ItemID).Return(offered, nil)

		_, err := f.service.Propose(ctx, actor, target.ItemID, offered.ItemID, "")
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})

	t.Run("ownership checked before availability", func(t *testing.T) {
		f := newServiceFixture(t)
		target := availableItem(ownerID, "Target")
		target.Status = domainItem.StatusReserved
		offered := availableItem(uuid.New(), "Someone else's")
		offered.Status = domainItem.StatusSold
		f.itemRepo.EXPECT().GetByID(ctx, target.ItemID).Return(target, nil)
		f.itemRepo.EXPECT().GetByID(ctx, offered.ItemID).Return(offered, nil)

		_, err := f.service.Propose(ctx, actor, target.ItemID, offered.ItemID, "")
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})

	t.Run("self barter", func(t *testing.T) {
		f := newServiceFixture(t)
		target := availableItem(actor.UserID, "Mine")
		offered := availableItem(actor.UserID, "Also mine")
		f.itemRepo.EXPECT().GetByID(ctx, target.ItemID).Return(target, nil)
		f.itemRepo.EXPECT().GetByID(ctx, offered.ItemID).Return(offered, nil)

		_, err := f.service.Propose(ctx, actor, target.ItemID, offered.ItemID, "")
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidOperation))
	})

	t.Run("offer item unavailable", func(t *testing.T) {
		f := newServiceFixture(t)
		target := availableItem(ownerID, "Target")
		offered := availableItem(actor.UserID, "Offered")
		offered.Status = domainItem.StatusReserved
		f.itemRepo.EXPECT().GetByID(ctx, target.ItemID).Return(target, nil)
		f.itemRepo.EXPECT().GetByID(ctx, offered.ItemID).Return(offered, nil)

		_, err := f.service.Propose(ctx, actor, target.ItemID, offered.ItemID, "")
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("duplicate pending request", func(t *testing.T) {
		f := newServiceFixture(t)
		target := availableItem(ownerID, "Target")
		offered := availableItem(actor.UserID, "Offered")
		f.itemRepo.EXPECT().GetByID(ctx, target.ItemID).Return(target, nil)
		f.itemRepo.EXPECT().GetByID(ctx, offered.ItemID).Return(offered, nil)
		f.barterRepo.EXPECT().ExistsPending(ctx, target.ItemID, offered.ItemID, actor.UserID).Return(true, nil)

		_, err := f.service.Propose(ctx, actor, target.ItemID, offered.ItemID, "")
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})
}

func TestService_Accept(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	owner := Actor{UserID: uuid.New(), Username: "bob"}

	t.Run("reserves both items and closes the request", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		target := availableItem(owner.UserID, "Target")
		target.ItemID = b.ItemID
		offered := availableItem(requesterID, "Offered")
		offered.ItemID = b.OfferItemID

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().WithTx(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		f.barterRepo.EXPECT().GetItemForUpdate(ctx, b.ItemID).Return(target, nil)
		f.barterRepo.EXPECT().GetItemForUpdate(ctx, b.OfferItemID).Return(offered, nil)
		f.barterRepo.EXPECT().UpdateItemStatus(ctx, b.ItemID, domainItem.StatusReserved).Return(nil)
		f.barterRepo.EXPECT().UpdateItemStatus(ctx, b.OfferItemID, domainItem.StatusReserved).Return(nil)
		f.barterRepo.EXPECT().Update(ctx, b).Return(nil)
		f.barterRepo.EXPECT().RecordTransition(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, tr *domainBarter.StateTransition) error {
				assert.Equal(t, domainBarter.StatusPending, tr.FromStatus)
				assert.Equal(t, domainBarter.StatusAccepted, tr.ToStatus)
				assert.Equal(t, "user:bob", tr.Actor)
				return nil
			})
		f.emitter.EXPECT().Emit(ctx, gomock.Any()).Do(func(_ context.Context, n *notification.Notification) {
			assert.Equal(t, requesterID, n.RecipientID)
			assert.Equal(t, notification.CategoryBarterAccepted, n.Category)
		})

		got, err := f.service.Accept(ctx, owner, b.BarterID)
		require.NoError(t, err)
		assert.Equal(t, domainBarter.StatusAccepted, got.Status)
	})

	t.Run("loses race when item reserved under lock", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		target := availableItem(owner.UserID, "Target")
		target.ItemID = b.ItemID
		target.Status = domainItem.StatusReserved
		offered := availableItem(requesterID, "Offered")
		offered.ItemID = b.OfferItemID

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().WithTx(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		f.barterRepo.EXPECT().GetItemForUpdate(ctx, b.ItemID).Return(target, nil)
		f.barterRepo.EXPECT().GetItemForUpdate(ctx, b.OfferItemID).Return(offered, nil)

		_, err := f.service.Accept(ctx, owner, b.BarterID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("requester cannot accept", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		_, err := f.service.Accept(ctx, Actor{UserID: requesterID}, b.BarterID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})

	t.Run("already accepted", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		b.Status = domainBarter.StatusAccepted
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		_, err := f.service.Accept(ctx, owner, b.BarterID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newServiceFixture(t)
		id := uuid.New()
		f.barterRepo.EXPECT().GetByID(ctx, id).Return(nil, nil)

		_, err := f.service.Accept(ctx, owner, id)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestService_Reject(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	owner := Actor{UserID: uuid.New(), Username: "bob"}

	t.Run("records reason and leaves items untouched", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().Update(ctx, b).Return(nil)
		f.barterRepo.EXPECT().RecordTransition(ctx, gomock.Any()).Return(nil)
		f.emitter.EXPECT().Emit(ctx, gomock.Any()).Do(func(_ context.Context, n *notification.Notification) {
			assert.Equal(t, requesterID, n.RecipientID)
			assert.Equal(t, notification.CategoryBarterRejected, n.Category)
			assert.Contains(t, n.Body, "not interested")
		})

		got, err := f.service.Reject(ctx, owner, b.BarterID, "not interested")
		require.NoError(t, err)
		assert.Equal(t, domainBarter.StatusRejected, got.Status)
		require.NotNil(t, got.RejectionReason)
		assert.Equal(t, "not interested", *got.RejectionReason)
	})

	t.Run("empty reason stays nil", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().Update(ctx, b).Return(nil)
		f.barterRepo.EXPECT().RecordTransition(ctx, gomock.Any()).Return(nil)
		f.emitter.EXPECT().Emit(ctx, gomock.Any())

		got, err := f.service.Reject(ctx, owner, b.BarterID, "")
		require.NoError(t, err)
		assert.Nil(t, got.RejectionReason)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		_, err := f.service.Reject(ctx, Actor{UserID: uuid.New()}, b.BarterID, "")
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	owner := Actor{UserID: uuid.New(), Username: "bob"}

	t.Run("accepted to rejected reverts only reserved items", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		b.Status = domainBarter.StatusAccepted
		target := availableItem(owner.UserID, "Target")
		target.ItemID = b.ItemID
		target.Status = domainItem.StatusReserved
		offered := availableItem(requesterID, "Offered")
		offered.ItemID = b.OfferItemID
		offered.Status = domainItem.StatusSold

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().WithTx(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		f.barterRepo.EXPECT().GetItemForUpdate(ctx, b.ItemID).Return(target, nil)
		f.barterRepo.EXPECT().GetItemForUpdate(ctx, b.OfferItemID).Return(offered, nil)
		// Only the still-reserved item goes back to AVAILABLE.
		f.barterRepo.EXPECT().UpdateItemStatus(ctx, b.ItemID, domainItem.StatusAvailable).Return(nil)
		f.barterRepo.EXPECT().Update(ctx, b).Return(nil)
		f.barterRepo.EXPECT().RecordTransition(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, tr *domainBarter.StateTransition) error {
				assert.Equal(t, domainBarter.StatusAccepted, tr.FromStatus)
				assert.Equal(t, domainBarter.StatusRejected, tr.ToStatus)
				return nil
			})
		f.emitter.EXPECT().Emit(ctx, gomock.Any()).Do(func(_ context.Context, n *notification.Notification) {
			assert.Equal(t, notification.CategoryBarterRejected, n.Category)
		})

		got, err := f.service.UpdateStatus(ctx, owner, b.BarterID, domainBarter.StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, domainBarter.StatusRejected, got.Status)
	})

	t.Run("pending to accepted reserves items", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		target := availableItem(owner.UserID, "Target")
		target.ItemID = b.ItemID
		offered := availableItem(requesterID, "Offered")
		offered.ItemID = b.OfferItemID

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().WithTx(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		f.barterRepo.EXPECT().GetItemForUpdate(ctx, b.ItemID).Return(target, nil)
		f.barterRepo.EXPECT().GetItemForUpdate(ctx, b.OfferItemID).Return(offered, nil)
		f.barterRepo.EXPECT().UpdateItemStatus(ctx, b.ItemID, domainItem.StatusReserved).Return(nil)
		f.barterRepo.EXPECT().UpdateItemStatus(ctx, b.OfferItemID, domainItem.StatusReserved).Return(nil)
		f.barterRepo.EXPECT().Update(ctx, b).Return(nil)
		f.barterRepo.EXPECT().RecordTransition(ctx, gomock.Any()).Return(nil)
		f.emitter.EXPECT().Emit(ctx, gomock.Any())

		got, err := f.service.UpdateStatus(ctx, owner, b.BarterID, "accepted")
		require.NoError(t, err)
		assert.Equal(t, domainBarter.StatusAccepted, got.Status)
	})

	t.Run("cancelled is not a valid target", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.UpdateStatus(ctx, owner, uuid.New(), domainBarter.StatusCancelled)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidOperation))
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		b.Status = domainBarter.StatusRejected
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		_, err := f.service.UpdateStatus(ctx, owner, b.BarterID, domainBarter.StatusAccepted)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("pending to pending conflicts", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requesterID, owner.UserID)
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		_, err := f.service.UpdateStatus(ctx, owner, b.BarterID, domainBarter.StatusPending)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})
}

func TestService_CancelWithdraw(t *testing.T) {
	ctx := context.Background()
	requester := Actor{UserID: uuid.New(), Username: "alice"}
	owner := Actor{UserID: uuid.New(), Username: "bob"}

	t.Run("requester cancels pending request", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requester.UserID, owner.UserID)

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().Delete(ctx, b.BarterID).Return(nil)
		f.barterRepo.EXPECT().RecordTransition(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, tr *domainBarter.StateTransition) error {
				assert.Equal(t, domainBarter.StatusCancelled, tr.ToStatus)
				return nil
			})
		f.emitter.EXPECT().Emit(ctx, gomock.Any()).Do(func(_ context.Context, n *notification.Notification) {
			assert.Equal(t, owner.UserID, n.RecipientID)
			assert.Equal(t, notification.CategoryBarterWithdrawn, n.Category)
		})

		require.NoError(t, f.service.Cancel(ctx, requester, b.BarterID))
	})

	t.Run("owner cancel notifies requester", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requester.UserID, owner.UserID)

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().Delete(ctx, b.BarterID).Return(nil)
		f.barterRepo.EXPECT().RecordTransition(ctx, gomock.Any()).Return(nil)
		f.emitter.EXPECT().Emit(ctx, gomock.Any()).Do(func(_ context.Context, n *notification.Notification) {
			assert.Equal(t, requester.UserID, n.RecipientID)
		})

		require.NoError(t, f.service.Cancel(ctx, owner, b.BarterID))
	})

	t.Run("cancel after accept conflicts", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requester.UserID, owner.UserID)
		b.Status = domainBarter.StatusAccepted
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		err := f.service.Cancel(ctx, requester, b.BarterID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("outsider cannot cancel", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requester.UserID, owner.UserID)
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		err := f.service.Cancel(ctx, Actor{UserID: uuid.New()}, b.BarterID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})

	t.Run("owner cannot withdraw", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requester.UserID, owner.UserID)
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		err := f.service.Withdraw(ctx, owner, b.BarterID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})

	t.Run("requester withdraws", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requester.UserID, owner.UserID)

		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)
		f.barterRepo.EXPECT().Delete(ctx, b.BarterID).Return(nil)
		f.barterRepo.EXPECT().RecordTransition(ctx, gomock.Any()).Return(nil)
		f.emitter.EXPECT().Emit(ctx, gomock.Any())

		require.NoError(t, f.service.Withdraw(ctx, requester, b.BarterID))
	})
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()
	requester := Actor{UserID: uuid.New(), Username: "alice"}
	owner := Actor{UserID: uuid.New(), Username: "bob"}

	t.Run("GetMyBarters delegates to repository", func(t *testing.T) {
		f := newServiceFixture(t)
		want := []*domainBarter.BarterRequest{pendingRequest(requester.UserID, owner.UserID)}
		f.barterRepo.EXPECT().ListByParticipant(ctx, requester.UserID, 50, 0).Return(want, nil)

		got, err := f.service.GetMyBarters(ctx, requester, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("ListBarters passes the filter through unscoped", func(t *testing.T) {
		f := newServiceFixture(t)
		status := domainBarter.StatusPending
		filter := domainBarter.Filter{Status: &status}
		want := []*domainBarter.BarterRequest{pendingRequest(requester.UserID, owner.UserID)}
		f.barterRepo.EXPECT().List(ctx, filter, 100, 0).Return(want, nil)

		got, err := f.service.ListBarters(ctx, filter, 100, 0)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("GetByID allows both participants", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requester.UserID, owner.UserID)
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil).Times(2)

		_, err := f.service.GetByID(ctx, requester, b.BarterID)
		require.NoError(t, err)
		_, err = f.service.GetByID(ctx, owner, b.BarterID)
		require.NoError(t, err)
	})

	t.Run("GetByID hides records from outsiders", func(t *testing.T) {
		f := newServiceFixture(t)
		b := pendingRequest(requester.UserID, owner.UserID)
		f.barterRepo.EXPECT().GetByID(ctx, b.BarterID).Return(b, nil)

		_, err := f.service.GetByID(ctx, Actor{UserID: uuid.New()}, b.BarterID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})
}
