package service

import (
	"testing"

	"canteen_hub/constants"
	"canteen_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest() *model.CancellationRequest {
	return &model.CancellationRequest{
		DTO:            model.DTO{ID: 11},
		OrderId:        42,
		OrderCode:      "FD-260314113000-ABC123",
		StallId:        3,
		CustomerId:     7,
		ReasonCategory: "WRONG_ORDER",
		ReasonLabel:    "Đặt nhầm món",
		Status:         constants.REQUEST_PENDING,
	}
}

func TestSubmit_CreatesRequest(t *testing.T) {
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_PENDING), nil },
	}
	var created *model.CancellationRequest
	requests := &mockCancellationRepo{
		createForOpenOrderFn: func(req *model.CancellationRequest, openStatuses []string) error {
			created = req
			assert.Equal(t, []string{constants.ORDER_PENDING, constants.ORDER_PREPARING}, openStatuses)
			return nil
		},
	}

	svc := NewCancellationService(requests, orders, nil, fixedClock)
	req, err := svc.Submit(42, 7, model.SubmitCancellationInput{
		ReasonCategory: "WRONG_ORDER",
		Explanation:    "bấm nhầm quầy",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(42), req.OrderId)
	assert.Equal(t, "Đặt nhầm món", req.ReasonLabel)
	assert.Equal(t, constants.REQUEST_PENDING, req.Status)
	assert.Equal(t, testNow, req.RequestedAt)
}

func TestSubmit_OnlyOwnOrder(t *testing.T) {
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_PENDING), nil },
	}

	svc := NewCancellationService(&mockCancellationRepo{}, orders, nil, fixedClock)
	_, err := svc.Submit(42, 999, model.SubmitCancellationInput{ReasonCategory: "OTHER"})

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSubmit_OrderPastCancellation(t *testing.T) {
	for _, status := range []string{constants.ORDER_READY, constants.ORDER_COMPLETED, constants.ORDER_CANCELLED} {
		orders := &mockOrderRepo{
			getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(status), nil },
		}
		svc := NewCancellationService(&mockCancellationRepo{}, orders, nil, fixedClock)
		_, err := svc.Submit(42, 7, model.SubmitCancellationInput{ReasonCategory: "OTHER"})

		assert.ErrorIs(t, err, ErrWrongOrderStatus, "status %s", status)
	}
}

func TestSubmit_DuplicatePending(t *testing.T) {
	orders := &mockOrderRepo{
		getByIDFn: func(uint) (*model.Order, error) { return orderInStatus(constants.ORDER_PENDING), nil },
	}
	requests := &mockCancellationRepo{
		createForOpenOrderFn: func(*model.CancellationRequest, []string) error {
			return ErrPendingRequestExists
		},
	}

	svc := NewCancellationService(requests, orders, nil, fixedClock)
	_, err := svc.Submit(42, 7, model.SubmitCancellationInput{ReasonCategory: "OTHER"})

	assert.ErrorIs(t, err, ErrPendingRequestExists)
}

func TestApprove_CancelsOrderAtomically(t *testing.T) {
	var gotRespFields, gotCancelFields map[string]any
	requests := &mockCancellationRepo{
		getByIDFn: func(id uint) (*model.CancellationRequest, error) {
			if id == 11 {
				return pendingRequest(), nil
			}
			return nil, nil
		},
		respondAndCancelFn: func(reqId uint, respFields map[string]any, orderId uint, openStatuses []string, cancelFields map[string]any) (bool, bool, error) {
			gotRespFields = respFields
			gotCancelFields = cancelFields
			assert.Equal(t, uint(42), orderId)
			return true, true, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewCancellationService(requests, &mockOrderRepo{}, notifier, fixedClock)
	_, err := svc.Approve(11, "", ownerActor(3))

	require.NoError(t, err)
	assert.Equal(t, constants.REQUEST_APPROVED, gotRespFields["status"])
	assert.Equal(t, "owner_com_ga", gotRespFields["responded_by"])
	assert.Equal(t, constants.ORDER_CANCELLED, gotCancelFields["status"])
	// Lý do hủy trên đơn lấy từ nhãn lý do của yêu cầu
	assert.Equal(t, "Đặt nhầm món", gotCancelFields["cancellation_reason"])

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, uint(7), notifier.sent[0].UserId)
}

func TestApprove_OrderMovedInMeantime(t *testing.T) {
	requests := &mockCancellationRepo{
		getByIDFn: func(uint) (*model.CancellationRequest, error) { return pendingRequest(), nil },
		respondAndCancelFn: func(uint, map[string]any, uint, []string, map[string]any) (bool, bool, error) {
			// Kho rollback cả hai phía: yêu cầu vẫn PENDING trong DB
			return true, false, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewCancellationService(requests, &mockOrderRepo{}, notifier, fixedClock)
	_, err := svc.Approve(11, "", adminActor())

	assert.ErrorIs(t, err, ErrOrderAlreadyMoved)
	assert.Empty(t, notifier.sent)
}

func TestApprove_FirstResponseWins(t *testing.T) {
	requests := &mockCancellationRepo{
		getByIDFn: func(uint) (*model.CancellationRequest, error) { return pendingRequest(), nil },
		respondAndCancelFn: func(uint, map[string]any, uint, []string, map[string]any) (bool, bool, error) {
			return false, false, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewCancellationService(requests, &mockOrderRepo{}, notifier, fixedClock)
	_, err := svc.Approve(11, "", adminActor())

	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.Empty(t, notifier.sent)
}

func TestApprove_AlreadyResolvedRequest(t *testing.T) {
	resolved := pendingRequest()
	resolved.Status = constants.REQUEST_DECLINED
	requests := &mockCancellationRepo{
		getByIDFn: func(uint) (*model.CancellationRequest, error) { return resolved, nil },
		respondAndCancelFn: func(uint, map[string]any, uint, []string, map[string]any) (bool, bool, error) {
			t.Fatal("không được chạm kho khi yêu cầu đã được phản hồi")
			return false, false, nil
		},
	}

	svc := NewCancellationService(requests, &mockOrderRepo{}, nil, fixedClock)
	_, err := svc.Approve(11, "", adminActor())

	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestApprove_Permissions(t *testing.T) {
	otherStall := uint(9)
	tests := []struct {
		name    string
		actor   Actor
		wantErr error
	}{
		{"admin", adminActor(), nil},
		{"chủ quầy đúng gian hàng", ownerActor(3), nil},
		{"chủ quầy sai gian hàng", ownerActor(otherStall), ErrPermissionDenied},
		{"sinh viên", Actor{Role: constants.ACTOR_CUSTOMER}, ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := &mockCancellationRepo{
				getByIDFn: func(uint) (*model.CancellationRequest, error) { return pendingRequest(), nil },
				respondAndCancelFn: func(uint, map[string]any, uint, []string, map[string]any) (bool, bool, error) {
					return true, true, nil
				},
			}
			svc := NewCancellationService(requests, &mockOrderRepo{}, nil, fixedClock)
			_, err := svc.Approve(11, "", tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecline_RequiresReason(t *testing.T) {
	svc := NewCancellationService(&mockCancellationRepo{}, &mockOrderRepo{}, nil, fixedClock)
	_, err := svc.Decline(11, "", ownerActor(3))

	assert.ErrorIs(t, err, ErrDeclineReasonRequired)
}

func TestDecline_KeepsOrderUntouched(t *testing.T) {
	var gotFields map[string]any
	requests := &mockCancellationRepo{
		getByIDFn: func(uint) (*model.CancellationRequest, error) { return pendingRequest(), nil },
		respondFn: func(id uint, fields map[string]any) (bool, error) {
			gotFields = fields
			return true, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewCancellationService(requests, &mockOrderRepo{}, notifier, fixedClock)
	_, err := svc.Decline(11, "đơn đang nấu dở", ownerActor(3))

	require.NoError(t, err)
	assert.Equal(t, constants.REQUEST_DECLINED, gotFields["status"])
	assert.Equal(t, "đơn đang nấu dở", gotFields["response_reason"])

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0].Message, "đơn đang nấu dở")
}

func TestDecline_SecondResponderLoses(t *testing.T) {
	requests := &mockCancellationRepo{
		getByIDFn: func(uint) (*model.CancellationRequest, error) { return pendingRequest(), nil },
		respondFn: func(uint, map[string]any) (bool, error) { return false, nil },
	}
	notifier := &mockNotifier{}

	svc := NewCancellationService(requests, &mockOrderRepo{}, notifier, fixedClock)
	_, err := svc.Decline(11, "lý do", adminActor())

	assert.ErrorIs(t, err, ErrAlreadyResolved)
	// Không gửi thông báo trùng cho lần phản hồi thua cuộc
	assert.Empty(t, notifier.sent)
}
