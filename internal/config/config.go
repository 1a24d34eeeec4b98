package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

// Seed holds the default passwords used when the store file is created
// for the first time.
type Seed struct {
	AdminPassword   string
	DoctorPassword  string
	PatientPassword string
}

type AppConfig struct {
	StorePath   string
	LogPath     string
	AuditDBPath string
	JWT         JWT
	Seed        Seed
}

var cfg AppConfig

// Init loads the yaml config at path. A missing file is fine; defaults apply.
func Init(path string) AppConfig {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// defaults
	v.SetDefault("assist.store_path", filepath.Join("data", "users_db.json"))
	v.SetDefault("assist.log_path", "")
	v.SetDefault("assist.audit_db_path", filepath.Join("data", "audit.db"))
	v.SetDefault("assist.jwt.secret", "dev-secret")
	v.SetDefault("assist.jwt.issuer", "healthassist")
	v.SetDefault("assist.jwt.exp_min", 60)
	v.SetDefault("assist.seed.admin_password", "admin123")
	v.SetDefault("assist.seed.doctor_password", "doctor123")
	v.SetDefault("assist.seed.patient_password", "patient123")
	_ = v.ReadInConfig()

	cfg = AppConfig{
		StorePath:   v.GetString("assist.store_path"),
		LogPath:     v.GetString("assist.log_path"),
		AuditDBPath: v.GetString("assist.audit_db_path"),
		JWT: JWT{
			Secret: v.GetString("assist.jwt.secret"),
			Issuer: v.GetString("assist.jwt.issuer"),
			ExpMin: v.GetInt("assist.jwt.exp_min"),
		},
		Seed: Seed{
			AdminPassword:   v.GetString("assist.seed.admin_password"),
			DoctorPassword:  v.GetString("assist.seed.doctor_password"),
			PatientPassword: v.GetString("assist.seed.patient_password"),
		},
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	return cfg
}

func Get() AppConfig { return cfg }
