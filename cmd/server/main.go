// Command server boots the WebDAV gateway: load config, wire the upstream
// client, metadata cascade, and projection engine, then mount the
// downstream WebDAV surface behind a Fiber middleware chain.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/net/webdav"

	"github.com/dbytex91/plexdav/internal/config"
	"github.com/dbytex91/plexdav/internal/metadata"
	"github.com/dbytex91/plexdav/internal/upstream"
	"github.com/dbytex91/plexdav/internal/vfs"
	"github.com/dbytex91/plexdav/internal/webdavfs"
)

func main() {
	host := flag.String("host", "", "override HOST")
	port := flag.Int("port", 0, "override PORT")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.BoolVar(verbose, "v", false, "enable debug logging (shorthand)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		log.SetLevel(log.LevelDebug)
	}

	up := upstream.New(cfg.WebDAVURL, cfg.Username, cfg.Password, cfg.CacheTTL)
	resolver := metadata.NewResolver(
		metadata.NewOMDb(cfg.OMDbKey),
		metadata.NewTMDb(cfg.TMDbKey),
		metadata.NewTVMaze(),
	)
	engine := vfs.New(up, resolver, vfs.WithTTL(cfg.CacheTTL))
	fs := webdavfs.New(engine, up)

	davHandler := &webdav.Handler{
		FileSystem: fs,
		LockSystem: webdav.NewMemLS(),
		Logger: func(r *http.Request, err error) {
			if err != nil {
				log.Errorf("webdav: %s %s: %v", r.Method, r.URL.Path, err)
			}
		},
	}

	app := fiber.New(fiber.Config{
		AppName: "plexdav",
		RequestMethods: []string{
			fiber.MethodGet, fiber.MethodHead, fiber.MethodPost, fiber.MethodPut,
			fiber.MethodDelete, fiber.MethodConnect, fiber.MethodOptions,
			fiber.MethodTrace, fiber.MethodPatch,
			"PROPFIND", "PROPPATCH", "MKCOL", "COPY", "MOVE", "LOCK", "UNLOCK",
		},
	})
	app.Use(cors.New())
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(logger.New(logger.Config{
		Format:       "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat:   "15:04:05",
		TimeZone:     "Local",
		TimeInterval: 500 * time.Millisecond,
		Output:       os.Stdout,
	}))

	app.All("/*", adaptor.HTTPHandler(davHandler))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Infof("plexdav listening on %s, upstream %s", addr, cfg.WebDAVURL)
	if err := app.Listen(addr); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
