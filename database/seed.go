package database

import (
	"canteen_hub/constants"
	"canteen_hub/model"
	"log"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456ch"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456ch"
	}

	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, Active: true, Role: constants.ROLE_ADMIN},
	}
	for _, account := range accounts {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	stalls := []model.Stall{
		{Name: "Cơm Tấm Cô Ba", Location: "Khu A - Quầy 1", Description: "Cơm tấm sườn bì chả", IsOpen: true},
		{Name: "Bún Bò Chú Bảy", Location: "Khu A - Quầy 2", Description: "Bún bò Huế chuẩn vị", IsOpen: true},
		{Name: "Trà Sữa SinhViên", Location: "Khu B - Quầy 5", Description: "Trà sữa, nước ép", IsOpen: true},
	}
	for i := range stalls {
		stalls[i].Slug = slug.Make(stalls[i].Name)
		if err := db.Where(model.Stall{Slug: stalls[i].Slug}).FirstOrCreate(&stalls[i]).Error; err != nil {
			log.Println("failed to seed data for stall:", stalls[i].Name, "error:", err)
			continue
		}

		owner := model.Account{
			Username: "owner_" + stalls[i].Slug,
			Password: HashPassword,
			Active:   true,
			Role:     constants.ROLE_OWNER,
			StallId:  &stalls[i].ID,
		}
		if err := db.Where(model.Account{Username: owner.Username}).FirstOrCreate(&owner).Error; err != nil {
			log.Println("failed to seed data for owner account:", owner.Username, "error:", err)
		}
	}

	var count int64
	db.Model(&model.MenuItem{}).Count(&count)
	if count == 0 && len(stalls) == 3 {
		menuItems := []model.MenuItem{
			{StallId: stalls[0].ID, Name: "Cơm tấm sườn", Price: 35000, IsAvailable: true,
				AddOns: []model.MenuAddOn{{Name: "Thêm trứng ốp la", Price: 6000}, {Name: "Thêm chả", Price: 8000}}},
			{StallId: stalls[0].ID, Name: "Cơm tấm bì chả", Price: 32000, IsAvailable: true},
			{StallId: stalls[1].ID, Name: "Bún bò đặc biệt", Price: 40000, IsAvailable: true,
				AddOns: []model.MenuAddOn{{Name: "Thêm giò", Price: 10000}}},
			{StallId: stalls[2].ID, Name: "Trà sữa trân châu", Price: 25000, IsAvailable: true,
				AddOns: []model.MenuAddOn{{Name: "Thêm trân châu", Price: 5000}, {Name: "Size L", Price: 7000}}},
		}
		if err := db.Create(&menuItems).Error; err != nil {
			log.Println("failed to seed menu items:", err)
		}
	}
}
