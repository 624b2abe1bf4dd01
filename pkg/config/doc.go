// Package config loads process configuration from defaults, an optional
// YAML file, and environment variables, in that order of precedence.
//
// The three layers compose: [Default] supplies local-development values,
// the YAML file overrides them, and set environment variables override
// everything. Deployments typically ship one YAML file per environment
// and inject secrets through the environment:
//
//	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// An empty path skips the file layer, so a fully env-driven setup needs
// no file at all.
//
// # Keys
//
// Every YAML key has an environment twin:
//
//	env: local                  ENV
//	debug: true                 DEBUG
//	app_host: 0.0.0.0           APP_HOST
//	app_port: 8000              APP_PORT
//	shutdown_timeout: 30s       SHUTDOWN_TIMEOUT
//	writer_db_url: postgres://  WRITER_DB_URL
//	reader_db_url: postgres://  READER_DB_URL
//	jwt_secret_key: ...         JWT_SECRET_KEY
//	jwt_algorithm: HS256        JWT_ALGORITHM
//	sentry_dsn: ...             SENTRY_DSN
//	redis_host: localhost       REDIS_HOST
//	redis_port: 6379            REDIS_PORT
//	job_queue: default          JOB_QUEUE
//	job_workers: 10             JOB_WORKERS
//
// # Typed Sub-Configs
//
// Infra packages take their own config structs; [Config] builds them so
// main functions stay declarative:
//
//	manager, err := db.NewManager(ctx, cfg.DB())
//	authenticator, err := auth.New(cfg.Auth())
//	client := redis.MustOpen(ctx, cfg.RedisURL())
//	app.Run(cfg.Addr())
package config
