package router

import (
	"canteen_hub/handler"
	"canteen_hub/middleware"
	"canteen_hub/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	account := v1.Group("/account", logger.New())
	account.Get("/", middleware.Protected(), handler.GetAllAccounts)
	account.Get("/me", middleware.Protected(), handler.Me)
	account.Post("/", middleware.Protected(), validate.CreateAccount(), handler.CreateAccount)
	account.Post("/change-password", middleware.Protected(), handler.AdminChangePassword)
	account.Patch("/:accountId/active", middleware.Protected(), validate.GetById("accountId"), handler.ToggleAccountActive)
	account.Put("/:accountId/stall", middleware.Protected(), validate.GetById("accountId"), handler.UpdateOwnerStall)

	stall := v1.Group("/stall", logger.New())
	stall.Post("/", middleware.Protected(), validate.CreateStall(), handler.CreateStall)
	stall.Put("/:stallId", middleware.Protected(), validate.EditStall("stallId"), handler.EditStall)
	stall.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteStalls)
	stall.Post("/:stallId/image", middleware.Protected(), validate.GetById("stallId"), handler.UploadStallImage)
	stall.Get("/orders", middleware.Protected(), handler.GetStallOrders)
	stall.Get("/cancellation-requests", middleware.Protected(), handler.GetStallCancellationRequests)
	stall.Get("/statistic", middleware.Protected(), handler.GetStallStats)

	menu := v1.Group("/menu", logger.New())
	menu.Get("/", handler.GetMenuItems)
	menu.Post("/", middleware.Protected(), validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Put("/:itemId", middleware.Protected(), validate.EditMenuItem("itemId"), handler.EditMenuItem)
	menu.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteMenuItems)
	menu.Post("/:itemId/image", middleware.Protected(), validate.GetById("itemId"), handler.UploadMenuItemImage)

	order := v1.Group("/order", logger.New())
	order.Get("/", middleware.Protected(), validate.FilterOrders(), handler.GetAllOrders)
	order.Patch("/:orderId/status", middleware.Protected(), validate.TransitionOrder("orderId"), handler.TransitionOrder)
	order.Post("/cancellation-requests/:requestId/approve", middleware.Protected(), validate.RespondCancellation("requestId"), handler.ApproveCancellation)
	order.Post("/cancellation-requests/:requestId/decline", middleware.Protected(), validate.RespondCancellation("requestId"), handler.DeclineCancellation)

	penalty := v1.Group("/penalty", logger.New())
	penalty.Get("/", middleware.Protected(), handler.GetAllPenalties)
	penalty.Post("/", middleware.Protected(), validate.IssuePenalty(), handler.IssuePenalty)

	customer := v1.Group("/customer", logger.New())
	customer.Get("/", middleware.Protected(), handler.GetAllCustomers)
	customer.Get("/:customerId", middleware.Protected(), validate.GetById("customerId"), handler.GetCustomerDetail)
	customer.Patch("/:customerId/active", middleware.Protected(), validate.GetById("customerId"), handler.ToggleCustomerActive)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/", middleware.Protected(), handler.GetAdminStats)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	// Phía sinh viên
	gianhang := v1.Group("/gian-hang")
	gianhang.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetAllStalls)
	gianhang.Get("/:slug", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetStallBySlug)

	giohang := v1.Group("/gio-hang")
	giohang.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyCart)
	giohang.Post("/", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.AddCartLine(), handler.AddCartLine)
	giohang.Put("/:lineId", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.UpdateCartLine("lineId"), handler.UpdateCartLine)
	giohang.Delete("/:lineId", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.GetById("lineId"), handler.RemoveCartLine)

	donhang := v1.Group("/don-hang")
	donhang.Post("/checkout", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.Checkout(), handler.Checkout)
	donhang.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyOrders)
	donhang.Get("/:code", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetOrderByCode)
	donhang.Post("/:orderId/yeu-cau-huy", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.SubmitCancellation("orderId"), handler.SubmitCancellation)

	yeucauhuy := v1.Group("/yeu-cau-huy")
	yeucauhuy.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyCancellationRequests)

	thongbao := v1.Group("/thong-bao")
	thongbao.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyNotifications)
	thongbao.Patch("/:notificationId/read", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.GetById("notificationId"), handler.MarkNotificationRead)
	thongbao.Patch("/read-all", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.MarkAllNotificationsRead)

	anphat := v1.Group("/an-phat")
	anphat.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyPenalties)

	sinhvien := v1.Group("/sinh-vien")
	sinhvien.Post("/login", handler.CustomerLogin)
	sinhvien.Get("/me", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetCurrentCustomer)
	sinhvien.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	sinhvien.Post("/change-password", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.CustomerChangePassword)

	// Realtime
	v1.Get("/ws/stall/:id", websocket.New(handler.StallOrdersWebsocket))
	v1.Get("/ws/feed/:id", websocket.New(handler.CustomerFeedWebsocket))
}
