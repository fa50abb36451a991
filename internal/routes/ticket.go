package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/services"
)

func runTicketRouter(secureGroup *echo.Group, ticketService *services.TicketService, commentService *services.CommentService, logger *zap.Logger) {
	ticketCtrl := controllers.NewTicketController(ticketService, logger)
	commentCtrl := controllers.NewCommentController(commentService, logger)

	secureGroup.GET("/tickets", ticketCtrl.GetTickets)
	secureGroup.GET("/ticket/:id", ticketCtrl.FindTicket)
	secureGroup.POST("/ticket", ticketCtrl.CreateTicket)
	secureGroup.PUT("/ticket/:id", ticketCtrl.UpdateTicket)
	secureGroup.PUT("/ticket/:id/assign", ticketCtrl.AssignTicket)
	secureGroup.PUT("/ticket/:id/close", ticketCtrl.CloseTicket)
	secureGroup.PUT("/ticket/:id/escalate", ticketCtrl.EscalateTicket)
	secureGroup.DELETE("/ticket/:id", ticketCtrl.DeleteTicket)

	// Комментарии живут внутри заявки
	secureGroup.GET("/ticket/:id/comments", commentCtrl.GetCommentsByTicket)
	secureGroup.POST("/ticket/:id/comment", commentCtrl.CreateComment)
	secureGroup.PUT("/comment/:id", commentCtrl.UpdateComment)
	secureGroup.DELETE("/comment/:id", commentCtrl.DeleteComment)
}
