package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/repository"
	"canteen_hub/service"
	"canteen_hub/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	formationService    *service.FormationService
	lifecycleService    *service.LifecycleService
	cancellationService *service.CancellationService
	penaltyService      *service.PenaltyService
)

// Init nối các service nghiệp vụ với kho GORM và notifier, gọi sau ConnectDB
func Init() {
	db := database.DB
	notifier := NewAppNotifier()

	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)
	requests := repository.NewCancellationRepository(db)
	penalties := repository.NewPenaltyRepository(db)

	formationService = service.NewFormationService(carts, orders, penalties, notifier, nil)
	lifecycleService = service.NewLifecycleService(orders, notifier, nil)
	cancellationService = service.NewCancellationService(requests, orders, notifier, nil)
	penaltyService = service.NewPenaltyService(penalties, notifier, nil)
}

// coreErrorResponse map lỗi của tầng service về mã HTTP
func coreErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case service.IsValidationError(err):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrPermissionDenied):
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, err)
	case errors.Is(err, service.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy bản ghi", err)
	case errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrAlreadyResolved),
		errors.Is(err, service.ErrOrderAlreadyMoved):
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
}
