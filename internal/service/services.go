package service

import (
	"github.com/murvyn/todo-app/internal/config"
	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/mail"
	"github.com/murvyn/todo-app/internal/store"
)

type Services struct {
	AuthService AuthService
	TodoService TodoService
}

func NewServices(storages *store.Storages, mailer mail.Mailer, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, mailer, cfg.Auth, cfg.Server.FrontendURL, logger),
		TodoService: NewTodoService(storages.TodoRepository, logger),
	}
}
