package http

import (
	"net/http"

	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/service"
	"github.com/murvyn/todo-app/internal/utils"
	"github.com/murvyn/todo-app/models"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// writeMessage writes a JSON body of the form {"message": ...} with the
// given status code. Every error response of the API uses this shape.
func writeMessage(w http.ResponseWriter, message string, statusCode int) {
	utils.WriteJSON(w, models.MessageResponse{Message: message}, statusCode)
}
