package handler

// DI for all handlers alike.

import (
	"github.com/yumyai/vogdb/pkg/service"
)

type DBContext struct {
	Service *service.VogService
}
