package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`

	Database Database `envPrefix:"DATABASE_"`
	JWT      JWT      `envPrefix:"JWT_"`

	Razorpay  Razorpay  `envPrefix:"RAZORPAY_"`
	Braintree Braintree `envPrefix:"BRAINTREE_"`
	Checkout  Checkout  `envPrefix:"CHECKOUT_"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite or mysql
	URL    string `env:"URL" envDefault:"file:pixer.db?cache=shared"`
}

type JWT struct {
	Secret string `env:"SECRET" envDefault:"dev-secret-please-change"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

// Checkout tunes the orchestrator timers and the post-purchase write policy.
type Checkout struct {
	// How long a razorpay collection may stay pending before it is aborted.
	PaymentTimeout time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"10m"`
	// Delay before the completion screen returns to a neutral state.
	AutoCloseDelay time.Duration `env:"AUTO_CLOSE_DELAY" envDefault:"3s"`
	// Grace period between close and session reset.
	ResetGraceDelay time.Duration `env:"RESET_GRACE_DELAY" envDefault:"300ms"`
	// atomic: single transaction for the grant sequence.
	// sequential: best effort, failures surfaced as warnings.
	GrantPolicy string `env:"GRANT_POLICY" envDefault:"atomic"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
