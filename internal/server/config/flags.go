package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags overlays command-line flags onto cfg.
//
//	-a string   HTTP listen address
//	-g string   gRPC listen address
//	-s string   storage driver: postgres, mongo or memory
//	-d string   PostgreSQL DSN
//	-m string   MongoDB URL
//	-n string   MongoDB database name
//	-k string   JWT signing key
//	-x string   password hash algorithm: bcrypt or argon2id
//	-b int      bcrypt cost
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-s", "-d", "-m", "-n", "-k", "-x", "-b", "-l"})

	fs := flag.NewFlagSet("authkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC listen address")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.MongoURL, "m", cfg.MongoURL, "MongoDB URL")
	fs.StringVar(&cfg.MongoDatabase, "n", cfg.MongoDatabase, "MongoDB database")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT signing key")
	fs.StringVar(&cfg.HashAlgorithm, "x", cfg.HashAlgorithm, "password hash algorithm")
	fs.IntVar(&cfg.BcryptCost, "b", cfg.BcryptCost, "bcrypt cost")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
