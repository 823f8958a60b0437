package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	invalidYamlPath := "./invalid_config.yaml"
	invalidContent := []byte("invalid: [unclosed_list\nanother: value")

	// Create invalid YAML file
	if err := os.WriteFile(invalidYamlPath, invalidContent, 0600); err != nil {
		panic("failed to create invalid YAML file: " + err.Error())
	}

	// Run tests
	code := m.Run()

	// Clean up
	os.Remove(invalidYamlPath)

	os.Exit(code)
}

func TestReadLocalConfig(t *testing.T) {
	type args struct {
		configPath string
	}
	tests := []struct {
		name    string
		args    args
		want    *ServiceConfig
		wantErr bool
	}{
		{
			name: "successful",
			args: args{
				configPath: "../res/config.yaml",
			},
			want: &ServiceConfig{
				ServiceName: "web-login",
				LogLevel:    "DEBUG",
				Host:        "localhost",
				Port:        "8080",
				Session: Session{
					CookieName:    "connect.sid",
					Lifetime:      6000 * time.Hour,
					SecureCookies: false,
				},
				Database: Database{
					Type: "mongo",
					MongoDB: MongoDBConfig{
						DSN:              "mongodb://localhost:27017/webloginDB",
						DatabaseName:     "webloginDB",
						Timeout:          10 * time.Second,
						ValidCollections: []string{"web_logins"},
						ValidFields:      []string{"username", "password"},
						Options: MongoServerOptions{
							APIVersion:           "1",
							SetStrict:            true,
							SetDeprecationErrors: true,
						},
					},
					Postgres: PostgresConfig{
						DSN:         "postgres://localhost:5432/weblogin?sslmode=disable",
						ValidTables: []string{"web_logins"},
						ValidFields: []string{"username", "password"},
						Options: PostgresServerOptions{
							MaxOpenConns:    10,
							MaxIdleConns:    5,
							ConnMaxLifetime: 30 * time.Second,
						},
					},
				},
			},
			wantErr: false,
		},
		{
			name: "nonexistent file",
			args: args{
				configPath: "./does_not_exist.yaml",
			},
			want:    nil,
			wantErr: true,
		},
		{
			name: "invalid yaml",
			args: args{
				configPath: "./invalid_config.yaml",
			},
			want:    nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Keep the environment out of the file-reading cases.
			t.Setenv(EnvPort, "")
			t.Setenv(EnvHost, "")
			t.Setenv(EnvDatabaseDSN, "")

			got, err := ReadLocalConfig(tt.args.configPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadLocalConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadLocalConfig() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	tests := []struct {
		name     string
		filePort string
		envPort  string
		envHost  string
		envDSN   string
		wantPort string
		wantHost string
		wantDSN  string
	}{
		{
			name:     "no overrides keeps file values",
			filePort: "8080",
			wantPort: "8080",
			wantHost: "localhost",
			wantDSN:  "mongodb://localhost:27017/webloginDB",
		},
		{
			name:     "port falls back to default when absent",
			filePort: "",
			wantPort: DefaultPort,
			wantHost: "localhost",
			wantDSN:  "mongodb://localhost:27017/webloginDB",
		},
		{
			name:     "port falls back to default when invalid",
			filePort: "8080",
			envPort:  "not-a-port",
			wantPort: DefaultPort,
			wantHost: "localhost",
			wantDSN:  "mongodb://localhost:27017/webloginDB",
		},
		{
			name:     "env overrides win",
			filePort: "8080",
			envPort:  "9090",
			envHost:  "0.0.0.0",
			envDSN:   "mongodb://db.example.com:27017/prodDB",
			wantPort: "9090",
			wantHost: "0.0.0.0",
			wantDSN:  "mongodb://db.example.com:27017/prodDB",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvPort, tt.envPort)
			t.Setenv(EnvHost, tt.envHost)
			t.Setenv(EnvDatabaseDSN, tt.envDSN)

			cfg := &ServiceConfig{
				Host: "localhost",
				Port: tt.filePort,
				Database: Database{
					Type: "mongo",
					MongoDB: MongoDBConfig{
						DSN: "mongodb://localhost:27017/webloginDB",
					},
				},
			}
			cfg.ApplyEnvOverrides()

			if cfg.Port != tt.wantPort {
				t.Errorf("Port = %q, want %q", cfg.Port, tt.wantPort)
			}
			if cfg.Host != tt.wantHost {
				t.Errorf("Host = %q, want %q", cfg.Host, tt.wantHost)
			}
			if cfg.Database.MongoDB.DSN != tt.wantDSN {
				t.Errorf("MongoDB DSN = %q, want %q", cfg.Database.MongoDB.DSN, tt.wantDSN)
			}
		})
	}
}
