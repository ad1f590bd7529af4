package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MKhiriev/escrow-api/internal/adapter"
	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: client [flags] <command> [args]

commands:
  health                      check the API is up
  categories                  list job categories with counts
  jobs [search]               list open jobs
  job <id>                    show one job
  freelancers [search]        list freelancers
  chat <message>              talk to the support bot
  smoke <email> <password>    run the client flow: sign in, post, edit and delete a job
  version                     print build info
`

func main() {
	log := logger.NewConsoleLogger("escrow-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if len(cfg.Args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	api, err := adapter.NewHTTPAPIAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create api adapter")
	}

	if err = run(context.Background(), api, cfg.Args); err != nil {
		var apiErr *adapter.APIError
		if errors.As(err, &apiErr) {
			for _, f := range apiErr.Fields {
				log.Error().Str("field", f.Field).Msg(f.Message)
			}
		}
		log.Fatal().Err(err).Str("command", cfg.Args[0]).Msg("command failed")
	}
}

func run(ctx context.Context, api adapter.APIAdapter, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "version":
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return nil
	case "health":
		return printResult(api.Health(ctx))
	case "categories":
		return printResult(api.Categories(ctx))
	case "jobs":
		return printResult(api.ListJobs(ctx, models.JobFilter{Search: strings.Join(rest, " ")}))
	case "job":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return printResult(api.GetJob(ctx, id))
	case "freelancers":
		return printResult(api.ListFreelancers(ctx, models.FreelancerFilter{Search: strings.Join(rest, " ")}))
	case "chat":
		if len(rest) == 0 {
			return errors.New("chat needs a message")
		}
		return printResult(api.Chat(ctx, strings.Join(rest, " ")))
	case "smoke":
		if len(rest) != 2 {
			return errors.New("smoke needs <email> <password>")
		}
		return smoke(ctx, api, rest[0], rest[1])
	}

	return fmt.Errorf("unknown command %q", cmd)
}

// smoke walks a client account through the job lifecycle. The account is
// created on first use.
func smoke(ctx context.Context, api adapter.APIAdapter, email, password string) error {
	_, err := api.Signin(ctx, models.SigninRequest{Email: email, Password: password})
	if errors.Is(err, adapter.ErrUnauthorized) {
		_, err = api.Signup(ctx, models.SignupRequest{
			Email:    email,
			Password: password,
			Name:     "Smoke Client",
			UserType: string(models.UserTypeClient),
		})
	}
	if err != nil {
		return err
	}

	profile, err := api.Profile(ctx)
	if err != nil {
		return err
	}
	if profile.UserType != models.UserTypeClient {
		return fmt.Errorf("account %s is a %s, smoke needs a client", email, profile.UserType)
	}

	category := "Web Development"
	job, err := api.CreateJob(ctx, models.CreateJobRequest{
		Title:       "Smoke test landing page",
		Description: "A landing page created by the client smoke command.",
		Budget:      500,
		Category:    &category,
		Tags:        []string{"smoke", "html"},
	})
	if err != nil {
		return err
	}
	fmt.Printf("created job %d\n", job.ID)

	status := string(models.JobStatusInProgress)
	if job, err = api.UpdateJob(ctx, job.ID, models.UpdateJobRequest{Status: &status}); err != nil {
		return err
	}
	fmt.Printf("job %d is %s\n", job.ID, job.Status)

	mine, err := api.MyJobs(ctx, "")
	if err != nil {
		return err
	}
	fmt.Printf("%s owns %d job(s)\n", profile.Name, len(mine))

	if err = api.DeleteJob(ctx, job.ID); err != nil {
		return err
	}
	fmt.Printf("deleted job %d\n", job.ID)

	return api.Logout(ctx)
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func printResult[T any](v T, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
