// Package redis connects the portal to Redis, which backs the visitor
// key-value store when SESSION_BACKEND=redis.
//
//	cfg, err := config.Load[redis.Config]()
//	client, err := redis.Connect(ctx, cfg)
//	defer client.Close()
//
//	store := session.NewRedisStore(client, ttl)
//	readiness := redis.Healthcheck(client)
package redis
