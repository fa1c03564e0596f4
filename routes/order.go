package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/shaher200/roeia-est/controllers/order"
	"github.com/shaher200/roeia-est/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Checkout: validates, deducts stock, records the pending order
		orders.POST("/place", orderControllers.PlaceOrderHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

		// Fetch orders for a specific user
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))

		// Fetch one order by numeric ID or order reference
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Back-office operations require the admin API key
		adminOrders := orders.Group("")
		adminOrders.Use(middleware.ValidateAPIKey)
		{
			// Fetch all orders
			adminOrders.GET("/", orderControllers.GetAllOrdersHandler(db))

			// Update order status (e.g. shipped, cancelled)
			adminOrders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))

			// Update payment status (e.g. paid, refunded)
			adminOrders.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))

			// Delete an order
			adminOrders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))

			// Download all orders as an Excel sheet
			adminOrders.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}
	}
}
