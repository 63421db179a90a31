package service

import (
	"testing"
	"time"

	"canteen_hub/constants"
	"canteen_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_AdminOnly(t *testing.T) {
	penalties := &mockPenaltyRepo{
		createFn: func(*model.Penalty) error {
			t.Fatal("không được ghi án phạt khi không phải admin")
			return nil
		},
	}
	svc := NewPenaltyService(penalties, nil, fixedClock)

	for _, actor := range []Actor{
		ownerActor(3),
		{Role: constants.ACTOR_CUSTOMER},
		{Role: constants.ACTOR_SYSTEM},
	} {
		_, err := svc.Issue(model.IssuePenaltyInput{
			TargetUserId: 7,
			Type:         constants.PENALTY_WARNING,
			Reason:       "bỏ đơn",
		}, actor)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestIssue_Warning(t *testing.T) {
	var created *model.Penalty
	penalties := &mockPenaltyRepo{
		createFn: func(p *model.Penalty) error {
			created = p
			return nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewPenaltyService(penalties, notifier, fixedClock)
	p, err := svc.Issue(model.IssuePenaltyInput{
		TargetUserId: 7,
		Type:         constants.PENALTY_WARNING,
		Reason:       "không đến lấy món",
	}, adminActor())

	require.NoError(t, err)
	assert.Equal(t, created, p)
	assert.Equal(t, testNow, p.IssuedAt)
	assert.Equal(t, "admin", p.IssuedBy)
	assert.Nil(t, p.ExpiresAt)
	assert.True(t, p.IsActive)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, uint(7), notifier.sent[0].UserId)
}

func TestIssue_SuspensionComputesExpiry(t *testing.T) {
	var created *model.Penalty
	penalties := &mockPenaltyRepo{
		createFn: func(p *model.Penalty) error {
			created = p
			return nil
		},
	}

	days := 3
	svc := NewPenaltyService(penalties, nil, fixedClock)
	_, err := svc.Issue(model.IssuePenaltyInput{
		TargetUserId: 7,
		Type:         constants.PENALTY_SUSPENSION,
		Reason:       "bỏ đơn 3 lần",
		DurationDays: &days,
	}, adminActor())

	require.NoError(t, err)
	require.NotNil(t, created.ExpiresAt)
	assert.Equal(t, testNow.AddDate(0, 0, 3), *created.ExpiresAt)
}

func TestIssue_SuspensionNeedsDuration(t *testing.T) {
	svc := NewPenaltyService(&mockPenaltyRepo{}, nil, fixedClock)

	_, err := svc.Issue(model.IssuePenaltyInput{
		TargetUserId: 7,
		Type:         constants.PENALTY_SUSPENSION,
		Reason:       "bỏ đơn",
	}, adminActor())
	assert.ErrorIs(t, err, ErrSuspensionNeedsDays)

	zero := 0
	_, err = svc.Issue(model.IssuePenaltyInput{
		TargetUserId: 7,
		Type:         constants.PENALTY_SUSPENSION,
		Reason:       "bỏ đơn",
		DurationDays: &zero,
	}, adminActor())
	assert.ErrorIs(t, err, ErrSuspensionNeedsDays)
}

func TestIssue_BanHasNoExpiry(t *testing.T) {
	var created *model.Penalty
	penalties := &mockPenaltyRepo{
		createFn: func(p *model.Penalty) error {
			created = p
			return nil
		},
	}

	days := 5 // bị bỏ qua với BAN
	svc := NewPenaltyService(penalties, nil, fixedClock)
	_, err := svc.Issue(model.IssuePenaltyInput{
		TargetUserId: 7,
		Type:         constants.PENALTY_BAN,
		Reason:       "gian lận thanh toán",
		DurationDays: &days,
	}, adminActor())

	require.NoError(t, err)
	assert.Nil(t, created.ExpiresAt)
}

func TestPenalty_InEffect(t *testing.T) {
	future := testNow.Add(24 * time.Hour)
	past := testNow.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		penalty model.Penalty
		want    bool
	}{
		{"BAN không hạn", model.Penalty{Type: constants.PENALTY_BAN, IsActive: true}, true},
		{"SUSPENSION còn hạn", model.Penalty{Type: constants.PENALTY_SUSPENSION, IsActive: true, ExpiresAt: &future}, true},
		{"SUSPENSION hết hạn", model.Penalty{Type: constants.PENALTY_SUSPENSION, IsActive: true, ExpiresAt: &past}, false},
		{"đã bị gỡ thủ công", model.Penalty{Type: constants.PENALTY_BAN, IsActive: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.penalty.InEffect(testNow))
		})
	}
}
