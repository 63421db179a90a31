package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"canteen_hub/constants"
	"canteen_hub/model"

	"github.com/google/uuid"
)

// FormationService chuyển giỏ hàng hỗn hợp thành các đơn theo từng gian hàng
// tại thời điểm checkout. Giá đã chốt trên giỏ, không đọc lại thực đơn.
type FormationService struct {
	carts     CartRepository
	orders    OrderRepository
	penalties PenaltyRepository
	notifier  Notifier
	now       Clock
}

func NewFormationService(carts CartRepository, orders OrderRepository, penalties PenaltyRepository, notifier Notifier, now Clock) *FormationService {
	if now == nil {
		now = time.Now
	}
	return &FormationService{carts: carts, orders: orders, penalties: penalties, notifier: notifier, now: now}
}

// CheckoutResult các đơn đã tạo trong một lượt checkout
type CheckoutResult struct {
	MainOrderCode string
	Orders        []model.Order
	GrandTotal    float64
	ChangeDue     float64
}

// NewMainOrderCode sinh mã đơn gốc: mốc thời gian + đuôi ngẫu nhiên, đủ để
// không đụng nhau khi cùng một người checkout đồng thời.
func NewMainOrderCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("FD-%s-%s", now.Format("060102150405"), suffix)
}

// Checkout tách giỏ theo gian hàng, mỗi gian một đơn PENDING dùng chung
// MainOrderCode. Tiền mặt được kiểm tra một lần trên tổng cộng trước khi tách;
// phần tiền mặt và tiền thối chỉ ghi trên đơn đầu tiên (CarriesCash=true).
// Giỏ chỉ được dọn sau khi mọi đơn đã ghi thành công.
func (s *FormationService) Checkout(customer *model.Customer, input model.CheckoutInput) (*CheckoutResult, error) {
	if err := s.checkPenalties(customer.ID); err != nil {
		return nil, err
	}

	lines, err := s.carts.ListByCustomer(customer.ID)
	if err != nil {
		return nil, fmt.Errorf("đọc giỏ hàng thất bại: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Tách theo gian hàng, giữ nguyên thứ tự dòng trong từng phần
	partitions := map[uint][]model.CartLine{}
	stallOrder := []uint{}
	for _, line := range lines {
		if _, ok := partitions[line.StallId]; !ok {
			stallOrder = append(stallOrder, line.StallId)
		}
		partitions[line.StallId] = append(partitions[line.StallId], line)
	}

	grandTotal := 0.0
	for _, line := range lines {
		grandTotal += line.LineTotal()
	}

	changeDue := 0.0
	if input.PaymentMethod == constants.PAYMENT_CASH {
		if input.CashTendered == nil {
			return nil, ErrCashRequired
		}
		if *input.CashTendered < grandTotal {
			return nil, fmt.Errorf("%w: đưa %.0f, cần %.0f", ErrInsufficientCash, *input.CashTendered, grandTotal)
		}
		changeDue = *input.CashTendered - grandTotal
	}

	now := s.now()
	mainCode := NewMainOrderCode(now)
	multiStall := len(stallOrder) > 1

	created := []model.Order{}
	consumedLineIds := []uint{}
	for idx, stallId := range stallOrder {
		part := partitions[stallId]
		order := s.buildOrder(customer, input, part, stallId, mainCode, idx, multiStall, changeDue, now)

		// Mỗi đơn là một lần ghi độc lập, không gói chung transaction: ghi dở
		// chừng thì trả lỗi và KHÔNG dọn giỏ, tránh nhân đôi đơn khi retry.
		if err := s.orders.Create(&order); err != nil {
			return nil, fmt.Errorf("ghi đơn cho gian hàng %d thất bại: %w", stallId, err)
		}
		created = append(created, order)
		for _, line := range part {
			consumedLineIds = append(consumedLineIds, line.ID)
		}
	}

	result := &CheckoutResult{
		MainOrderCode: mainCode,
		Orders:        created,
		GrandTotal:    grandTotal,
		ChangeDue:     changeDue,
	}

	if err := s.carts.DeleteByIDs(customer.ID, consumedLineIds); err != nil {
		// Đơn đã tạo đủ, chỉ việc dọn giỏ cần thử lại
		log.Printf("Dọn giỏ sau checkout thất bại (customer=%d, main=%s): %v", customer.ID, mainCode, err)
		return result, fmt.Errorf("%w: %v", ErrCartClearFailed, err)
	}

	s.notifyCheckout(customer.ID, result)
	return result, nil
}

func (s *FormationService) buildOrder(customer *model.Customer, input model.CheckoutInput, part []model.CartLine, stallId uint, mainCode string, idx int, multiStall bool, changeDue float64, now time.Time) model.Order {
	publicCode := mainCode
	if multiStall {
		publicCode = fmt.Sprintf("%s-%d", mainCode, idx+1)
	}

	subtotal := 0.0
	items := make([]model.OrderItem, 0, len(part))
	for _, line := range part {
		subtotal += line.LineTotal()
		item := model.OrderItem{
			MenuItemId: line.MenuItemId,
			Name:       line.ItemName,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Note:       line.Note,
		}
		for _, a := range line.AddOns {
			item.AddOns = append(item.AddOns, model.OrderItemAddOn{Name: a.Name, Price: a.Price})
		}
		items = append(items, item)
	}

	order := model.Order{
		PublicCode:          publicCode,
		MainOrderCode:       mainCode,
		StallId:             stallId,
		CustomerId:          customer.ID,
		CustomerName:        customer.UserName,
		CustomerEmail:       customer.Email,
		StudentCode:         customer.StudentCode,
		Subtotal:            subtotal,
		PaymentMethod:       input.PaymentMethod,
		Status:              constants.ORDER_PENDING,
		StatusUpdatedAt:     now,
		SpecialInstructions: input.SpecialInstructions,
		ScheduledReadyBy:    input.ScheduledReadyBy,
		GroupMemberEmails:   strings.Join(input.GroupMemberEmails, ","),
		IsMultiStallSibling: multiStall,
		Items:               items,
	}
	order.CreatedAt = now

	// Chính sách phân bổ tiền mặt: toàn bộ tiền đưa và tiền thối ghi trên đơn
	// đầu tiên của lượt checkout, các đơn anh em để trống.
	if input.PaymentMethod == constants.PAYMENT_CASH && idx == 0 {
		order.CashTendered = input.CashTendered
		order.ChangeDue = &changeDue
		order.CarriesCash = true
	}
	return order
}

// checkPenalties chặn đặt món khi còn án BAN hoặc SUSPENSION chưa hết hạn.
// Không tin IsActive, so ExpiresAt với thời điểm hiện tại.
func (s *FormationService) checkPenalties(customerId uint) error {
	if s.penalties == nil {
		return nil
	}
	penalties, err := s.penalties.ListByUser(customerId)
	if err != nil {
		return fmt.Errorf("đọc án phạt thất bại: %w", err)
	}
	now := s.now()
	for i := range penalties {
		p := &penalties[i]
		if p.Type == constants.PENALTY_WARNING {
			continue
		}
		if p.InEffect(now) {
			return ErrAccountSuspended
		}
	}
	return nil
}

func (s *FormationService) notifyCheckout(customerId uint, result *CheckoutResult) {
	if s.notifier == nil {
		return
	}
	title := "Đặt món thành công"
	message := fmt.Sprintf("Lượt đặt %s gồm %d đơn, tổng %.0fđ. Dùng mã trên từng đơn để nhận món.",
		result.MainOrderCode, len(result.Orders), result.GrandTotal)
	s.notifier.Send(customerId, title, message, map[string]any{"mainOrderCode": result.MainOrderCode})
}
