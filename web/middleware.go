package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"partybets/domain/entities"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// Credential headers presented to close or settle a bet
const (
	HeaderHostPIN     = "X-Host-PIN"
	HeaderCreatorName = "X-Creator-Name"
)

type credentialsKey struct{}

// requestLogger logs each request with logrus once it completes
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		log.WithFields(log.Fields{
			"requestID": chimiddleware.GetReqID(r.Context()),
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"bytes":     ww.BytesWritten(),
			"duration":  time.Since(start),
		}).Debug("Handled request")
	})
}

// withCredentials reads the credential headers into the request context
func withCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds := entities.Credentials{
			PIN:         r.Header.Get(HeaderHostPIN),
			CreatorName: strings.TrimSpace(r.Header.Get(HeaderCreatorName)),
		}
		ctx := context.WithValue(r.Context(), credentialsKey{}, creds)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// credentialsFrom returns the credentials stored by withCredentials
func credentialsFrom(ctx context.Context) entities.Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(entities.Credentials)
	return creds
}
