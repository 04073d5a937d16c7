package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Lending constants. LoanAPR is the stored annual rate (reporting
	// only); RepayInterestRate is the share of each repayment booked as
	// interest.
	LoanAPR           decimal.Decimal
	RepayInterestRate decimal.Decimal
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getdecimal(k, d string) decimal.Decimal {
	raw := getenv(k, d)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		v, _ = decimal.NewFromString(d)
	}
	return v
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "bankcredit"),
		MySQLUser: getenv("MYSQL_USER", "bankcredit"),
		MySQLPass: getenv("MYSQL_PASS", "bankcredit"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		LoanAPR:           getdecimal("LOAN_APR", "4.35"),
		RepayInterestRate: getdecimal("REPAY_INTEREST_RATE", "0.10"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if !c.LoanAPR.IsPositive() {
		return errors.New("LOAN_APR must be positive")
	}
	if !c.RepayInterestRate.IsPositive() || c.RepayInterestRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errors.New("REPAY_INTEREST_RATE must be in (0, 1)")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
