package config

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8081,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "imovia_test",
			User:     "test_user",
			Password: "test_password",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Storage: StorageConfig{
			Provider:  "local",
			UploadDir: "./uploads-test",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			DB:   0,
		},
	}
}
