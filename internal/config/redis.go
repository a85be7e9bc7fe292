package config

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisConfigFromEnv() (RedisConfig, error) {
	addr, err := getRequiredString("AUTH_SERVICE_REDIS_ADDR")
	if err != nil {
		return RedisConfig{}, err
	}

	db, err := getIntFromEnv("AUTH_SERVICE_REDIS_DB", 0)
	if err != nil {
		return RedisConfig{}, err
	}

	return RedisConfig{
		Addr:     addr,
		Password: getOptionalString("AUTH_SERVICE_REDIS_PASSWORD"),
		DB:       db,
	}, nil
}
