package service

import (
	"testing"

	"canteen_hub/constants"
	"canteen_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminActor() Actor {
	return Actor{Role: constants.ACTOR_ADMIN, ID: 1, Display: "admin"}
}

func ownerActor(stallId uint) Actor {
	return Actor{Role: constants.ACTOR_OWNER, ID: 2, Display: "owner_com_ga", StallId: &stallId}
}

func orderInStatus(status string) *model.Order {
	return &model.Order{
		DTO:        model.DTO{ID: 42},
		PublicCode: "FD-260314113000-ABC123",
		StallId:    3,
		CustomerId: 7,
		Status:     status,
	}
}

func TestCanTransition_Table(t *testing.T) {
	statuses := []string{
		constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY,
		constants.ORDER_COMPLETED, constants.ORDER_CANCELLED,
	}
	allowed := map[[2]string]bool{
		{constants.ORDER_PENDING, constants.ORDER_PREPARING}:   true,
		{constants.ORDER_PENDING, constants.ORDER_CANCELLED}:   true,
		{constants.ORDER_PREPARING, constants.ORDER_READY}:     true,
		{constants.ORDER_PREPARING, constants.ORDER_CANCELLED}: true,
		{constants.ORDER_READY, constants.ORDER_COMPLETED}:     true,
	}

	// Mọi cặp còn lại phải bị bảng từ chối, kể cả đi lùi và tự chuyển
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransition_HappyPath(t *testing.T) {
	var gotFields map[string]any
	var gotFrom []string
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_PENDING), nil },
		updateStatusIfFn: func(id uint, fromStatuses []string, fields map[string]any) (bool, error) {
			gotFrom = fromStatuses
			gotFields = fields
			return true, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewLifecycleService(orders, notifier, fixedClock)
	err := svc.Transition(42, constants.ORDER_PREPARING, "", ownerActor(3))

	require.NoError(t, err)
	assert.Equal(t, []string{constants.ORDER_PENDING}, gotFrom)
	assert.Equal(t, constants.ORDER_PREPARING, gotFields["status"])
	assert.Equal(t, testNow, gotFields["status_updated_at"])

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, uint(7), notifier.sent[0].UserId)
}

func TestTransition_IllegalStep(t *testing.T) {
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_READY), nil },
		updateStatusIfFn: func(uint, []string, map[string]any) (bool, error) {
			t.Fatal("không được ghi khi bước chuyển không hợp lệ")
			return false, nil
		},
	}

	svc := NewLifecycleService(orders, nil, fixedClock)
	err := svc.Transition(42, constants.ORDER_PREPARING, "", adminActor())

	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTransition_TerminalStatesFrozen(t *testing.T) {
	for _, terminal := range []string{constants.ORDER_COMPLETED, constants.ORDER_CANCELLED} {
		orders := &mockOrderRepo{
			getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(terminal), nil },
		}
		svc := NewLifecycleService(orders, nil, fixedClock)

		for _, to := range []string{
			constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY,
			constants.ORDER_COMPLETED, constants.ORDER_CANCELLED,
		} {
			err := svc.Transition(42, to, "x", adminActor())
			assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s", terminal, to)
		}
	}
}

func TestTransition_CancelRequiresReason(t *testing.T) {
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_PENDING), nil },
	}

	svc := NewLifecycleService(orders, nil, fixedClock)
	err := svc.Transition(42, constants.ORDER_CANCELLED, "", adminActor())

	assert.ErrorIs(t, err, ErrCancelReasonRequired)
}

func TestTransition_CancelStampsAudit(t *testing.T) {
	var gotFields map[string]any
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_PREPARING), nil },
		updateStatusIfFn: func(id uint, from []string, fields map[string]any) (bool, error) {
			gotFields = fields
			return true, nil
		},
	}

	svc := NewLifecycleService(orders, nil, fixedClock)
	err := svc.Transition(42, constants.ORDER_CANCELLED, "hết nguyên liệu", ownerActor(3))

	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_CANCELLED, gotFields["status"])
	assert.Equal(t, "owner_com_ga", gotFields["cancelled_by"])
	assert.Equal(t, "hết nguyên liệu", gotFields["cancellation_reason"])
	assert.Equal(t, testNow, gotFields["cancelled_at"])
}

func TestTransition_Permissions(t *testing.T) {
	otherStall := uint(9)
	tests := []struct {
		name    string
		actor   Actor
		to      string
		wantErr error
	}{
		{"chủ quầy đúng gian hàng", ownerActor(3), constants.ORDER_PREPARING, nil},
		{"chủ quầy sai gian hàng", ownerActor(otherStall), constants.ORDER_PREPARING, ErrPermissionDenied},
		{"chủ quầy chưa gán gian hàng", Actor{Role: constants.ACTOR_OWNER, Display: "x"}, constants.ORDER_PREPARING, ErrPermissionDenied},
		{"admin", adminActor(), constants.ORDER_PREPARING, nil},
		{"system chỉ được hủy", Actor{Role: constants.ACTOR_SYSTEM, Display: "system"}, constants.ORDER_PREPARING, ErrPermissionDenied},
		{"sinh viên không được chuyển", Actor{Role: constants.ACTOR_CUSTOMER, Display: "sv"}, constants.ORDER_PREPARING, ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderRepo{
				getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_PENDING), nil },
				updateStatusIfFn: func(uint, []string, map[string]any) (bool, error) {
					return true, nil
				},
			}
			svc := NewLifecycleService(orders, nil, fixedClock)
			err := svc.Transition(42, tt.to, "", tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransition_LostRace(t *testing.T) {
	// Đơn PENDING lúc đọc nhưng bị chuyển đi trước khi UPDATE chạm tới
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_PENDING), nil },
		updateStatusIfFn: func(uint, []string, map[string]any) (bool, error) {
			return false, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewLifecycleService(orders, notifier, fixedClock)
	err := svc.Transition(42, constants.ORDER_PREPARING, "", adminActor())

	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Empty(t, notifier.sent)
}

func TestTransition_NotFound(t *testing.T) {
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return nil, nil },
	}

	svc := NewLifecycleService(orders, nil, fixedClock)
	err := svc.Transition(999, constants.ORDER_PREPARING, "", adminActor())

	assert.ErrorIs(t, err, ErrNotFound)
}
