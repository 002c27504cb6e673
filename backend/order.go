package backend

import (
	"context"

	"github.com/google/uuid"

	"foodgateway/pkg/logger"
	"foodgateway/pkg/models"
	"foodgateway/pkg/rpc"
)

type OrderServer struct {
	log logger.ILogger
}

func NewOrderServer(log logger.ILogger) *OrderServer {
	return &OrderServer{log: log}
}

func (s *OrderServer) CreateOrder(ctx context.Context, in *rpc.OrderRequest) (*rpc.OrderResponse, error) {
	orderID := uuid.NewString()
	s.log.Info("order created",
		logger.String("order_id", orderID),
		logger.String("user_id", in.UserID),
		logger.String("restaurant_id", in.RestaurantID),
		logger.Strings("items", in.Items))

	return &rpc.OrderResponse{OrderID: orderID, Status: models.OrderStatusCreated}, nil
}
