package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ngcs-mobile/courtclient/internal/devserver"
	"github.com/ngcs-mobile/courtclient/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

func main() {

	addr := flag.String("addr", ":8080", "listen address")
	username := flag.String("user", "demo", "demo account username")
	password := flag.String("password", "demo", "demo account password")
	ttl := flag.Duration("ttl", 5*time.Minute, "session lifetime")
	version := flag.String("version", "1.0.0", "reported server version")
	flag.Parse()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	srv := devserver.New(devserver.Config{
		Username:                   *username,
		PasswordHash:               hash,
		JWTSecret:                  []byte("devserver-local-secret"),
		SessionTTL:                 *ttl,
		ServerVersion:              *version,
		MinCompatibleServerVersion: 1,
	}, logger)

	log.Printf("devserver listening on %s", *addr)
	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatalf("%v", err)
	}

}
