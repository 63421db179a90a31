package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/model"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var (
	reminderScheduler *cron.Cron
	cartScheduler     gocron.Scheduler
)

// StartScheduleReminderScheduler quét đơn đặt trước mỗi phút, nhắc sinh viên
// và đẩy lại hàng đợi quầy khi sắp đến giờ hẹn lấy món
func StartScheduleReminderScheduler() {
	reminderScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := reminderScheduler.AddFunc("* * * * *", remindScheduledOrders)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler nhắc đơn hẹn giờ: %v", err)
		return
	}

	reminderScheduler.Start()
	log.Println("Scheduler nhắc đơn hẹn giờ đã khởi động (mỗi phút)")
}

func remindScheduledOrders() {
	db := database.DB
	now := time.Now()
	windowEnd := now.Add(15 * time.Minute)

	var orders model.Orders
	if err := db.
		Where("scheduled_ready_by IS NOT NULL").
		Where("schedule_reminded_at IS NULL").
		Where("scheduled_ready_by <= ?", windowEnd).
		Where("status IN ?", []string{constants.ORDER_PENDING, constants.ORDER_PREPARING}).
		Find(&orders).Error; err != nil {
		log.Printf("Lỗi quét đơn hẹn giờ: %v", err)
		return
	}

	notifier := NewAppNotifier()
	for i := range orders {
		order := &orders[i]

		// Đánh dấu trước để lần quét sau không nhắc lại
		if err := db.Model(order).Update("schedule_reminded_at", now).Error; err != nil {
			log.Printf("Lỗi đánh dấu đã nhắc đơn %s: %v", order.PublicCode, err)
			continue
		}

		notifier.Send(order.CustomerId,
			"Sắp đến giờ nhận món",
			fmt.Sprintf("Đơn %s hẹn sẵn sàng lúc %s, bạn nhớ ghé quầy nhé.",
				order.PublicCode, order.ScheduledReadyBy.Format("15:04")),
			map[string]any{"orderCode": order.PublicCode})

		// Nhắc cả màn hình bếp để quầy ưu tiên đơn hẹn giờ
		BroadcastStallOrders(order.StallId)
	}
}

// StartCartCleanupScheduler dọn các dòng giỏ hàng bỏ quên quá một ngày,
// chạy lúc 3 giờ sáng khi căng tin không hoạt động
func StartCartCleanupScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	cartScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(cleanupStaleCartLines),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("✅ Cart cleanup scheduler started (03:00 ICT)")
}

func cleanupStaleCartLines() {
	db := database.DB
	cutoff := time.Now().Add(-24 * time.Hour)

	var stale []model.CartLine
	if err := db.Where("created_at < ?", cutoff).Find(&stale).Error; err != nil {
		log.Printf("Lỗi quét giỏ hàng cũ: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	ids := make([]uint, 0, len(stale))
	for _, line := range stale {
		ids = append(ids, line.ID)
	}

	if err := db.Where("cart_line_id IN ?", ids).Delete(&model.CartLineAddOn{}).Error; err != nil {
		log.Printf("Lỗi xóa món kèm của giỏ hàng cũ: %v", err)
		return
	}
	if err := db.Where("id IN ?", ids).Delete(&model.CartLine{}).Error; err != nil {
		log.Printf("Lỗi xóa giỏ hàng cũ: %v", err)
		return
	}

	log.Printf("Đã dọn %d dòng giỏ hàng bỏ quên", len(ids))
}
