//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/bvelickovic/gymtracker/internal"
	"github.com/bvelickovic/gymtracker/internal/config"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverPort = 9000
	serverHost = "localhost"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type Suite struct {
	DB         *sql.DB
	dockerPool *dockertest.Pool
	server     *internal.Server
	teardown   []func()
}

func newSuite(ctx context.Context) (_ *Suite) {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	pgPort, err := suite.postgresSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	cfg := getTestConfig(pgPort)
	suite.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		suite.cleanup()
		log.Fatalf("new server: %s", err)
	}

	suite.server.Serve(ctx, cfg.Host, cfg.Port)

	return suite
}

func (s *Suite) cleanup() {
	if s.DB != nil {
		s.DB.Close()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
	if s.server != nil {
		s.server.GracefulShutdown()
	}
}

func getTestConfig(postgresPort string) *config.Config {
	return &config.Config{
		Host:                  serverHost,
		Port:                  serverPort,
		PostgresHost:          "localhost",
		PostgresPort:          postgresPort,
		PostgresDBName:        "gymtracker",
		PrometheusMetricsHost: "localhost",
		PrometheusMetricsPort: "9001",
	}
}

func (s *Suite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "12",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=gymtracker",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/gymtracker?sslmode=disable", pgPort)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("open db conn: %s", err)
	}
	s.DB = db

	// wait for the container to accept connections
	if err := s.dockerPool.Retry(db.Ping); err != nil {
		return "", fmt.Errorf("ping db: %s", err)
	}

	res, err := db.Exec(initSQL)
	if err != nil {
		return "", fmt.Errorf("run init script: %s", err)
	}

	numRows, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("get rows affected: %s", err)
	}

	log.Printf("postgres setup result: %d\n", numRows)

	return pgPort, nil
}

const initSQL = `
CREATE TABLE public.machine
(
    id         SERIAL PRIMARY KEY,
    name       VARCHAR NOT NULL,
    image      TEXT    NOT NULL DEFAULT '',
    notes      TEXT    NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL
);

ALTER TABLE public.machine OWNER TO postgres;
CREATE INDEX ix_machine_name ON public.machine (name);

CREATE TABLE public.exercise
(
    id            SERIAL PRIMARY KEY,
    user_id       VARCHAR NOT NULL,
    machine_name  VARCHAR NOT NULL,
    weight        DOUBLE PRECISION NOT NULL DEFAULT 0,
    reps          INTEGER NOT NULL DEFAULT 0,
    sets          INTEGER NOT NULL DEFAULT 0,
    date          TIMESTAMPTZ NOT NULL,
    machine_image TEXT NOT NULL DEFAULT '',
    machine_notes TEXT NOT NULL DEFAULT ''
);

ALTER TABLE public.exercise OWNER TO postgres;
CREATE INDEX ix_exercise_user_id ON public.exercise (user_id);
CREATE INDEX ix_exercise_date ON public.exercise (date);
`
