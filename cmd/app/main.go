// File: cmd/app/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"smart-ocr-client/internal/config"
	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/adapter"
	"smart-ocr-client/internal/domain/ports/repository"
	"smart-ocr-client/internal/infra/adapters/backend"
	pg "smart-ocr-client/internal/infra/db/postgres"
	"smart-ocr-client/internal/infra/logging"
	"smart-ocr-client/internal/infra/metrics"
	red "smart-ocr-client/internal/infra/redis"
	"smart-ocr-client/internal/infra/sched"
	"smart-ocr-client/internal/infra/store"
	"smart-ocr-client/internal/infra/web"
	"smart-ocr-client/internal/usecase"

	"github.com/rs/zerolog"
)

const usage = `usage: smart-ocr-client [-config config.yaml] [-dev] <command> [args]

commands:
  register            create an account (prompts for fields)
  login <username>    sign in (prompts for password)
  logout              sign out; job history is kept
  upload <file>       submit a document for processing
  jobs                list the current user's jobs
  watch               poll job statuses until interrupted
  result <job-id>     fetch a completed job's output
  search <query> [n]  search processed documents (page n)
  download <job-id>   resolve an artifact download URL
  clear               delete the current user's job history
  serve               run the poller + local dashboard
`

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// ---- Store ----
	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	// ---- Backend ----
	client, err := backend.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		log.Fatalf("backend: %v", err)
	}

	// ---- Repositories ----
	jobRepo := store.NewJobRepo(kv)
	sessionRepo := store.NewSessionRepo(kv)

	// ---- Use cases ----
	sessionUC := usecase.NewSessionUseCase(client, sessionRepo, logger)
	jobsUC := usecase.NewJobsUseCase(jobRepo, logger)
	uploadUC := usecase.NewUploadUseCase(client, jobRepo, logger)
	syncUC := usecase.NewSyncUseCase(client, jobRepo, logger)
	resultUC := usecase.NewResultUseCase(client, logger)
	searchUC := usecase.NewSearchUseCase(client, logger)
	downloadUC := usecase.NewDownloadUseCase(client, logger)

	app := &app{
		cfg:        cfg,
		log:        logger,
		sessionUC:  sessionUC,
		jobsUC:     jobsUC,
		uploadUC:   uploadUC,
		syncUC:     syncUC,
		resultUC:   resultUC,
		searchUC:   searchUC,
		downloadUC: downloadUC,
	}

	if err := app.run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (repository.KVStore, func(), error) {
	switch cfg.Store.Driver {
	case "file":
		fs, err := store.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	case "redis":
		client, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return red.NewKVStore(client), func() { _ = client.Close() }, nil
	case "postgres":
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		kv, err := pg.NewKVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

type app struct {
	cfg        *config.Config
	log        *zerolog.Logger
	sessionUC  usecase.SessionUseCase
	jobsUC     usecase.JobsUseCase
	uploadUC   usecase.UploadUseCase
	syncUC     usecase.SyncUseCase
	resultUC   usecase.ResultUseCase
	searchUC   usecase.SearchUseCase
	downloadUC usecase.DownloadUseCase
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.sessionUC.Logout(ctx)
	case "upload":
		return a.upload(ctx, rest)
	case "jobs":
		return a.listJobs(ctx)
	case "watch":
		return a.watch(ctx)
	case "result":
		return a.result(ctx, rest)
	case "search":
		return a.search(ctx, rest)
	case "download":
		return a.download(ctx, rest)
	case "clear":
		return a.clear(ctx)
	case "serve":
		return a.serve(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func prompt(label string) string {
	fmt.Printf("%s: ", label)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

func (a *app) register(ctx context.Context) error {
	req := adapter.RegisterRequest{
		Username: prompt("Username"),
		Email:    prompt("Email"),
		Name:     prompt("Full name"),
		Password: prompt("Password"),
	}
	if err := a.sessionUC.Register(ctx, req); err != nil {
		return err
	}
	fmt.Println("Registration successful. You can now log in.")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: login <username>")
	}
	password := prompt("Password")
	user, err := a.sessionUC.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s!\n", user.Username)
	return nil
}

func (a *app) currentUser(ctx context.Context) (*model.User, error) {
	user, err := a.sessionUC.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w (run `login <username>` first)", domain.ErrNoSession)
	}
	return user, nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: upload <file>")
	}
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	job, err := a.uploadUC.Submit(ctx, user.Username, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Printf("Submitted %s as job %s (%s)\n", job.Filename, job.ID, job.Status)
	return nil
}

func (a *app) listJobs(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	jobs, err := a.jobsUC.List(ctx, user.Username)
	if err != nil {
		return err
	}
	printJobs(jobs)
	return nil
}

func printJobs(jobs []model.Job) {
	if len(jobs) == 0 {
		fmt.Println("No jobs yet. Upload a file to begin.")
		return
	}
	for _, j := range jobs {
		fmt.Printf("%-36s  %-28s  %-10s  %3d%%  %s\n", j.ID, j.Filename, j.Status, j.Progress, j.Stage)
	}
}

// watch runs the poller and re-renders the job list until interrupted.
func (a *app) watch(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	poller := sched.NewPoller(a.cfg.Poll.Interval, a.syncUC, user.Username, a.log)
	poller.Start(ctx)
	defer poller.Stop()

	render := time.NewTicker(2 * a.cfg.Poll.Interval)
	defer render.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-render.C:
			jobs, err := a.jobsUC.List(ctx, user.Username)
			if err != nil {
				continue
			}
			printJobs(jobs)
			if allTerminal(jobs) {
				fmt.Println("All jobs finished.")
				return nil
			}
		}
	}
}

func allTerminal(jobs []model.Job) bool {
	for _, j := range jobs {
		if !j.Status.Terminal() {
			return false
		}
	}
	return len(jobs) > 0
}

func (a *app) result(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: result <job-id>")
	}
	res, err := a.resultUC.Fetch(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println("--- Extracted text ---")
	fmt.Println(res.Text)
	fmt.Println("--- Entities ---")
	if res.RawEntities != "" {
		fmt.Println(res.RawEntities)
	} else {
		for _, e := range res.Entities {
			fmt.Printf("%-20s %s\n", e.Label, e.Text)
		}
	}
	fmt.Println("--- Tags ---")
	if res.RawTags != "" {
		fmt.Println(res.RawTags)
	} else {
		fmt.Println(strings.Join(res.Tags, ", "))
	}
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: search <query> [page]")
	}
	items := a.searchUC.Search(ctx, args[0])
	pages := usecase.NewPages(items, a.cfg.Search.PageSize)
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			pages.Goto(n)
		}
	}
	if pages.TotalPages() == 0 {
		fmt.Println("No results.")
		return nil
	}
	for _, it := range pages.Page() {
		tags := it.Tags
		if len(tags) > 6 {
			tags = tags[:6]
		}
		fmt.Printf("%-36s  %-28s  [%s]\n", it.ID, it.Filename, strings.Join(tags, ", "))
	}
	fmt.Printf("page %d/%d (%d results)\n", pages.PageNum(), pages.TotalPages(), len(items))
	return nil
}

func (a *app) download(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: download <job-id>")
	}
	url, err := a.downloadUC.ResolveURL(ctx, args[0])
	if err != nil {
		fmt.Println("Download not available yet.")
		return nil
	}
	fmt.Println(url)
	return nil
}

func (a *app) clear(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := a.jobsUC.Clear(ctx, user.Username); err != nil {
		return err
	}
	fmt.Println("Job history cleared.")
	return nil
}

// serve runs the poller alongside the read-only dashboard until interrupted.
func (a *app) serve(ctx context.Context) error {
	var poller *sched.Poller
	if user, err := a.sessionUC.Current(ctx); err == nil {
		poller = sched.NewPoller(a.cfg.Poll.Interval, a.syncUC, user.Username, a.log)
		poller.Start(ctx)
		defer poller.Stop()
	} else {
		a.log.Warn().Msg("no active session; dashboard will serve without polling")
	}

	srv := web.NewServer(a.sessionUC, a.jobsUC, a.resultUC, a.searchUC, a.downloadUC, a.cfg.Search.PageSize, a.log)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(a.cfg.Dashboard.Port) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
