package service

import (
	"errors"
	"testing"
	"time"

	"canteen_hub/constants"
	"canteen_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testCustomer() *model.Customer {
	return &model.Customer{
		DTO:         model.DTO{ID: 7},
		Email:       "sv@truong.edu.vn",
		UserName:    "nguyenvana",
		StudentCode: "SV001",
	}
}

func cartLine(id, stallId uint, name string, price float64, qty int) model.CartLine {
	return model.CartLine{
		DTO:        model.DTO{ID: id},
		CustomerId: 7,
		StallId:    stallId,
		MenuItemId: id * 10,
		ItemName:   name,
		UnitPrice:  price,
		Quantity:   qty,
	}
}

func TestCheckout_SplitsCartByStall(t *testing.T) {
	lines := []model.CartLine{
		cartLine(1, 3, "Cơm gà", 50, 1),
		cartLine(2, 5, "Trà đào", 30, 1),
		cartLine(3, 3, "Canh chua", 50, 1),
	}

	var created []*model.Order
	carts := &mockCartRepo{
		listByCustomerFn: func(customerId uint) ([]model.CartLine, error) { return lines, nil },
	}
	orders := &mockOrderRepo{
		createFn: func(order *model.Order) error {
			created = append(created, order)
			return nil
		},
	}

	svc := NewFormationService(carts, orders, nil, nil, fixedClock)
	cash := 150.0
	result, err := svc.Checkout(testCustomer(), model.CheckoutInput{
		PaymentMethod: constants.PAYMENT_CASH,
		CashTendered:  &cash,
	})

	require.NoError(t, err)
	require.Len(t, result.Orders, 2)
	assert.Equal(t, 130.0, result.GrandTotal)
	assert.Equal(t, 20.0, result.ChangeDue)

	// Gian hàng 3 xuất hiện trước trong giỏ nên là đơn đầu tiên
	first, second := created[0], created[1]
	assert.Equal(t, uint(3), first.StallId)
	assert.Equal(t, uint(5), second.StallId)
	assert.Equal(t, 100.0, first.Subtotal)
	assert.Equal(t, 30.0, second.Subtotal)
	assert.Len(t, first.Items, 2)
	assert.Len(t, second.Items, 1)

	// Mọi đơn chung MainOrderCode, mã nhận món đánh số theo thứ tự
	assert.Equal(t, result.MainOrderCode, first.MainOrderCode)
	assert.Equal(t, result.MainOrderCode, second.MainOrderCode)
	assert.Equal(t, result.MainOrderCode+"-1", first.PublicCode)
	assert.Equal(t, result.MainOrderCode+"-2", second.PublicCode)
	assert.True(t, first.IsMultiStallSibling)
	assert.True(t, second.IsMultiStallSibling)

	// Tiền mặt chỉ ghi trên đơn đầu tiên
	assert.True(t, first.CarriesCash)
	require.NotNil(t, first.CashTendered)
	assert.Equal(t, 150.0, *first.CashTendered)
	require.NotNil(t, first.ChangeDue)
	assert.Equal(t, 20.0, *first.ChangeDue)
	assert.False(t, second.CarriesCash)
	assert.Nil(t, second.CashTendered)
	assert.Nil(t, second.ChangeDue)
}

func TestCheckout_SingleStallKeepsPlainCode(t *testing.T) {
	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) {
			return []model.CartLine{cartLine(1, 3, "Cơm gà", 50, 2)}, nil
		},
	}
	var created *model.Order
	orders := &mockOrderRepo{
		createFn: func(order *model.Order) error {
			created = order
			return nil
		},
	}

	svc := NewFormationService(carts, orders, nil, nil, fixedClock)
	result, err := svc.Checkout(testCustomer(), model.CheckoutInput{
		PaymentMethod: constants.PAYMENT_CAMPUS_CARD,
	})

	require.NoError(t, err)
	assert.Equal(t, result.MainOrderCode, created.PublicCode)
	assert.False(t, created.IsMultiStallSibling)
	assert.False(t, created.CarriesCash)
	assert.Equal(t, constants.ORDER_PENDING, created.Status)
	assert.Equal(t, testNow, created.StatusUpdatedAt)
}

func TestCheckout_EmptyCart(t *testing.T) {
	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) { return nil, nil },
	}

	svc := NewFormationService(carts, &mockOrderRepo{}, nil, nil, fixedClock)
	_, err := svc.Checkout(testCustomer(), model.CheckoutInput{PaymentMethod: constants.PAYMENT_CAMPUS_CARD})

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_CashValidation(t *testing.T) {
	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) {
			return []model.CartLine{cartLine(1, 3, "Cơm gà", 50, 2)}, nil
		},
	}
	orders := &mockOrderRepo{
		createFn: func(*model.Order) error {
			t.Fatal("không được tạo đơn khi tiền mặt không hợp lệ")
			return nil
		},
	}
	svc := NewFormationService(carts, orders, nil, nil, fixedClock)

	t.Run("thiếu số tiền đưa", func(t *testing.T) {
		_, err := svc.Checkout(testCustomer(), model.CheckoutInput{PaymentMethod: constants.PAYMENT_CASH})
		assert.ErrorIs(t, err, ErrCashRequired)
	})

	t.Run("đưa không đủ", func(t *testing.T) {
		cash := 80.0
		_, err := svc.Checkout(testCustomer(), model.CheckoutInput{
			PaymentMethod: constants.PAYMENT_CASH,
			CashTendered:  &cash,
		})
		assert.ErrorIs(t, err, ErrInsufficientCash)
	})
}

func TestCheckout_AddOnsCountTowardTotal(t *testing.T) {
	line := cartLine(1, 3, "Bún bò", 40, 2)
	line.AddOns = []model.CartLineAddOn{{Name: "Thêm trứng", Price: 5}}

	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) { return []model.CartLine{line}, nil },
	}
	var created *model.Order
	orders := &mockOrderRepo{
		createFn: func(order *model.Order) error {
			created = order
			return nil
		},
	}

	svc := NewFormationService(carts, orders, nil, nil, fixedClock)
	result, err := svc.Checkout(testCustomer(), model.CheckoutInput{PaymentMethod: constants.PAYMENT_CAMPUS_CARD})

	require.NoError(t, err)
	// (40 + 5) × 2
	assert.Equal(t, 90.0, result.GrandTotal)
	require.Len(t, created.Items, 1)
	require.Len(t, created.Items[0].AddOns, 1)
	assert.Equal(t, 5.0, created.Items[0].AddOns[0].Price)
}

func TestCheckout_PartialWriteFailureKeepsCart(t *testing.T) {
	lines := []model.CartLine{
		cartLine(1, 3, "Cơm gà", 50, 1),
		cartLine(2, 5, "Trà đào", 30, 1),
	}
	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) { return lines, nil },
		deleteByIDsFn: func(uint, []uint) error {
			t.Fatal("không được dọn giỏ khi có đơn ghi thất bại")
			return nil
		},
	}
	calls := 0
	orders := &mockOrderRepo{
		createFn: func(*model.Order) error {
			calls++
			if calls == 2 {
				return errors.New("db down")
			}
			return nil
		},
	}

	svc := NewFormationService(carts, orders, nil, nil, fixedClock)
	result, err := svc.Checkout(testCustomer(), model.CheckoutInput{PaymentMethod: constants.PAYMENT_CAMPUS_CARD})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCheckout_CartClearFailureStillReturnsOrders(t *testing.T) {
	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) {
			return []model.CartLine{cartLine(1, 3, "Cơm gà", 50, 1)}, nil
		},
		deleteByIDsFn: func(uint, []uint) error { return errors.New("db down") },
	}
	orders := &mockOrderRepo{
		createFn: func(*model.Order) error { return nil },
	}

	svc := NewFormationService(carts, orders, nil, nil, fixedClock)
	result, err := svc.Checkout(testCustomer(), model.CheckoutInput{PaymentMethod: constants.PAYMENT_CAMPUS_CARD})

	assert.ErrorIs(t, err, ErrCartClearFailed)
	require.NotNil(t, result)
	assert.Len(t, result.Orders, 1)
}

func TestCheckout_BlockedBySuspension(t *testing.T) {
	expires := testNow.Add(48 * time.Hour)
	penalties := &mockPenaltyRepo{
		listByUserFn: func(uint) ([]model.Penalty, error) {
			return []model.Penalty{{
				Type:      constants.PENALTY_SUSPENSION,
				IsActive:  true,
				ExpiresAt: &expires,
			}}, nil
		},
	}
	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) {
			t.Fatal("không được đọc giỏ khi tài khoản bị đình chỉ")
			return nil, nil
		},
	}

	svc := NewFormationService(carts, &mockOrderRepo{}, penalties, nil, fixedClock)
	_, err := svc.Checkout(testCustomer(), model.CheckoutInput{PaymentMethod: constants.PAYMENT_CAMPUS_CARD})

	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestCheckout_ExpiredSuspensionAllowed(t *testing.T) {
	expired := testNow.Add(-time.Hour)
	penalties := &mockPenaltyRepo{
		listByUserFn: func(uint) ([]model.Penalty, error) {
			return []model.Penalty{
				{Type: constants.PENALTY_SUSPENSION, IsActive: true, ExpiresAt: &expired},
				{Type: constants.PENALTY_WARNING, IsActive: true},
			}, nil
		},
	}
	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) {
			return []model.CartLine{cartLine(1, 3, "Cơm gà", 50, 1)}, nil
		},
	}
	orders := &mockOrderRepo{createFn: func(*model.Order) error { return nil }}

	svc := NewFormationService(carts, orders, penalties, nil, fixedClock)
	result, err := svc.Checkout(testCustomer(), model.CheckoutInput{PaymentMethod: constants.PAYMENT_CAMPUS_CARD})

	require.NoError(t, err)
	assert.Len(t, result.Orders, 1)
}

func TestCheckout_NotifiesCustomer(t *testing.T) {
	carts := &mockCartRepo{
		listByCustomerFn: func(uint) ([]model.CartLine, error) {
			return []model.CartLine{cartLine(1, 3, "Cơm gà", 50, 1)}, nil
		},
	}
	orders := &mockOrderRepo{createFn: func(*model.Order) error { return nil }}
	notifier := &mockNotifier{}

	svc := NewFormationService(carts, orders, nil, notifier, fixedClock)
	result, err := svc.Checkout(testCustomer(), model.CheckoutInput{PaymentMethod: constants.PAYMENT_CAMPUS_CARD})

	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, uint(7), notifier.sent[0].UserId)
	assert.Equal(t, result.MainOrderCode, notifier.sent[0].Metadata["mainOrderCode"])
}

func TestNewMainOrderCode_Format(t *testing.T) {
	code := NewMainOrderCode(testNow)
	assert.Regexp(t, `^FD-260314113000-[0-9A-F]{6}$`, code)
}
