package service

import (
	"fmt"
	"time"

	"canteen_hub/constants"
	"canteen_hub/model"
)

// PenaltyService sổ ghi án phạt, chỉ ghi thêm. Không có tiến trình nền nào
// tự gỡ án: IsActive giữ nguyên true, nơi cần chặn quyền tự so ExpiresAt.
type PenaltyService struct {
	penalties PenaltyRepository
	notifier  Notifier
	now       Clock
}

func NewPenaltyService(penalties PenaltyRepository, notifier Notifier, now Clock) *PenaltyService {
	if now == nil {
		now = time.Now
	}
	return &PenaltyService{penalties: penalties, notifier: notifier, now: now}
}

// Issue ban hành án phạt. SUSPENSION bắt buộc có số ngày và tính ExpiresAt
// ngay lúc ban hành; WARNING/BAN bỏ qua duration.
func (s *PenaltyService) Issue(input model.IssuePenaltyInput, actor Actor) (*model.Penalty, error) {
	if actor.Role != constants.ACTOR_ADMIN {
		return nil, ErrPermissionDenied
	}

	now := s.now()
	penalty := &model.Penalty{
		TargetUserId:   input.TargetUserId,
		Type:           input.Type,
		Reason:         input.Reason,
		Description:    input.Description,
		RelatedOrderId: input.RelatedOrderId,
		IssuedBy:       actor.Display,
		IssuedAt:       now,
		IsActive:       true,
	}

	if input.Type == constants.PENALTY_SUSPENSION {
		if input.DurationDays == nil || *input.DurationDays <= 0 {
			return nil, ErrSuspensionNeedsDays
		}
		expires := now.AddDate(0, 0, *input.DurationDays)
		penalty.ExpiresAt = &expires
	}

	if err := s.penalties.Create(penalty); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Send(input.TargetUserId,
			"Tài khoản bị xử phạt",
			fmt.Sprintf("Bạn nhận một án phạt %s. Lý do: %s", penaltyLabel(input.Type), input.Reason),
			map[string]any{"penaltyId": penalty.ID, "type": penalty.Type})
	}
	return penalty, nil
}

// ListByUser lịch sử án phạt của một người dùng
func (s *PenaltyService) ListByUser(userId uint) ([]model.Penalty, error) {
	return s.penalties.ListByUser(userId)
}

func penaltyLabel(penaltyType string) string {
	switch penaltyType {
	case constants.PENALTY_WARNING:
		return "cảnh cáo"
	case constants.PENALTY_SUSPENSION:
		return "đình chỉ"
	case constants.PENALTY_BAN:
		return "cấm vĩnh viễn"
	default:
		return penaltyType
	}
}
