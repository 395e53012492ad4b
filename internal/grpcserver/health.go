// Package grpcserver exposes the standard gRPC health service for
// orchestrators that probe over gRPC instead of HTTP.
package grpcserver

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"fandomexplorer/pkg/utils"
)

// Service names reported alongside the overall ("") status.
const (
	SuperheroService = "superhero"
	ComicVineService = "comicvine"
)

func servingStatus(ok bool) healthpb.HealthCheckResponse_ServingStatus {
	if ok {
		return healthpb.HealthCheckResponse_SERVING
	}
	return healthpb.HealthCheckResponse_NOT_SERVING
}

// NewHealthServer reports each upstream as serving when its api key is
// configured. The overall status follows the superhero api, which the
// service cannot work without.
func NewHealthServer(cfg utils.Config) *health.Server {
	hs := health.NewServer()
	superheroOK := cfg.SuperheroAPIKey != ""
	hs.SetServingStatus("", servingStatus(superheroOK))
	hs.SetServingStatus(SuperheroService, servingStatus(superheroOK))
	hs.SetServingStatus(ComicVineService, servingStatus(cfg.ComicVineConfigured()))
	return hs
}

func NewServer(cfg utils.Config) (*grpc.Server, *health.Server) {
	hs := NewHealthServer(cfg)
	s := grpc.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}
