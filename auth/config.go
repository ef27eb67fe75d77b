package auth

import "errors"

// AppName is the fixed issuer label stamped into second-factor enrollment
// artifacts.
const AppName = "Ironyy"

/*
====================================
HASHER CONFIG
====================================
*/

// HasherConfig defines the Argon2id cost parameters used for every password
// hash. The parameters are embedded in each encoded hash, so changing them
// never invalidates previously stored hashes.
type HasherConfig struct {
	MemoryKiB   uint32
	Passes      uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultHasherConfig returns the production cost parameters: single-lane,
// large memory, multiple passes, tuned for interactive latency in the
// hundreds of milliseconds.
func DefaultHasherConfig() HasherConfig {
	return HasherConfig{
		MemoryKiB:   19456,
		Passes:      8,
		Parallelism: 1,
		KeyLength:   32,
	}
}

func validateHasherConfig(cfg HasherConfig) error {
	if cfg.MemoryKiB < minMemoryKiB {
		return errors.New("hasher memory must be at least 1024 KiB")
	}
	if cfg.Passes < 1 {
		return errors.New("hasher passes must be at least 1")
	}
	if cfg.Parallelism < 1 {
		return errors.New("hasher parallelism must be at least 1")
	}
	if cfg.KeyLength < minKeyLength {
		return errors.New("hasher key length must be at least 16 bytes")
	}
	return nil
}

/*
====================================
SECOND FACTOR CONFIG
====================================
*/

// SecondFactorConfig defines the TOTP parameters shared by issuing and
// verification. Both sides must agree; the defaults match what common
// authenticator apps expect.
type SecondFactorConfig struct {
	SecretSize int
	Digits     int
	Period     int
	Algorithm  string
}

// DefaultSecondFactorConfig returns a 32-byte seed, 6-digit, 30-second,
// HMAC-SHA1 configuration.
func DefaultSecondFactorConfig() SecondFactorConfig {
	return SecondFactorConfig{
		SecretSize: 32,
		Digits:     6,
		Period:     30,
		Algorithm:  "SHA1",
	}
}

/*
====================================
ENGINE CONFIG
====================================
*/

// Config carries everything an [Engine] needs. Configure once during
// initialization and treat as immutable afterwards.
type Config struct {
	Issuer       string
	Hasher       HasherConfig
	SecondFactor SecondFactorConfig
}

// DefaultConfig returns the production configuration with the application
// issuer label.
func DefaultConfig() Config {
	return Config{
		Issuer:       AppName,
		Hasher:       DefaultHasherConfig(),
		SecondFactor: DefaultSecondFactorConfig(),
	}
}
