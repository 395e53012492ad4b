package main

import (
	"fmt"
	"net"
	"os"

	"go.uber.org/zap"

	"fandomexplorer/internal/grpcserver"
	"fandomexplorer/pkg/logger"
	"fandomexplorer/pkg/utils"
)

func main() {
	cfg, err := utils.LoadConfigUnchecked()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Must(logger.Config{Level: cfg.LogLevel, Development: !cfg.IsProduction()})
	defer func() { _ = log.Sync() }()

	listener, err := net.Listen("tcp", cfg.GrpcAddr)
	if err != nil {
		log.Fatal("grpc listen failed", zap.String("addr", cfg.GrpcAddr), zap.Error(err))
	}

	grpcServer, _ := grpcserver.NewServer(cfg)

	log.Info("gRPC health server listening", zap.String("addr", cfg.GrpcAddr))
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatal("grpc server stopped", zap.Error(err))
	}
}
