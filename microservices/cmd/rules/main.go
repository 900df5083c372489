package main

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"go_rules/internal/bootstrap"
	rulesRPC "go_rules/microservices/proto"
	"go_rules/microservices/usecase"
)

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	lis, err := net.Listen("tcp", cfg.RulesGrpcPort)
	if err != nil {
		logger.Fatalf("cant listen port %s: %v", cfg.RulesGrpcPort, err)
	}

	server := grpc.NewServer()
	rulesRPC.RegisterRulesServer(server, usecase.NewRulesUseCase(logger))
	logger.Infof("rules grpc server is running on %s", cfg.RulesGrpcPort)
	if err = server.Serve(lis); err != nil {
		logger.Fatal("grpc server stopped", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
