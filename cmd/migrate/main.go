package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/temmaissaude/cotador/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("aviso: .env não encontrado, usando apenas variáveis do sistema: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./migrations", "diretório das migrações")
	flag.Parse()

	connCfg, err := pgx.ParseConfig(cfg.DBDSN)
	if err != nil {
		log.Fatalf("goose: DSN inválido: %v", err)
	}

	db := stdlib.OpenDB(*connCfg)
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falha ao fechar conexão: %v", err)
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s aplicado\n", command)
}
