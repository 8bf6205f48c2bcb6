package http

import "github.com/gin-gonic/gin"

func RegisterTicketRoutes(r *gin.Engine, handler *TicketHandler) {
	tickets := r.Group("/tickets")
	{
		tickets.POST("", handler.IssueTicket)
		tickets.GET("/check-by-event/:eventId", handler.CheckTicketsByEvent)
		tickets.GET("/:id", handler.GetTicket)
		tickets.PUT("/:id", handler.UpdateTicket)
		tickets.DELETE("/:id", handler.CancelTicket)
	}
}
