package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gen2brain/beeep"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"

	"focuscal/internal/analytics"
	"focuscal/internal/calendar"
	"focuscal/internal/config"
	"focuscal/internal/ics"
	appLog "focuscal/internal/log"
	"focuscal/internal/model"
)

func main() {
	app := &cli.App{
		Name:  "focuscal",
		Usage: "Personal calendar and focus-session tracker.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "focuscal.yaml",
				Usage: "path to the YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "state",
				Value: "focuscal.json",
				Usage: "path to the JSON state file (events and sessions)",
			},
		},
		Commands: []*cli.Command{
			importCommand(),
			overviewCommand(),
			exportCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		appLog.Error("focuscal failed", err)
		os.Exit(1)
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import events from an .ics calendar export.",
		ArgsUsage: "<file.ics>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "include events that already passed",
			},
			&cli.StringFlag{
				Name:  "type",
				Usage: "default event type when no category matches (meeting, custom, reminder, ...)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the imported events as JSON instead of a count",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one .ics file argument")
			}

			body, err := os.ReadFile(c.Args().First())
			if err != nil {
				return fmt.Errorf("read ics file: %w", err)
			}

			st, err := loadState(c.String("state"))
			if err != nil {
				return fmt.Errorf("load state: %w", err)
			}

			opts := ics.ImportOptions{
				DefaultEventType: model.EventType(c.String("type")),
			}
			if c.Bool("all") {
				opts.SkipPastEvents = ics.Bool(false)
			}

			svc := calendar.NewService()
			fresh := svc.ImportICS(st.Events, string(body), opts)
			if len(fresh) == 0 {
				fmt.Println("No new events found.")
				return nil
			}

			st.Events = append(st.Events, fresh...)
			if err := saveState(c.String("state"), st); err != nil {
				return fmt.Errorf("save state: %w", err)
			}

			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(fresh)
			}
			fmt.Printf("Imported %d event(s).\n", len(fresh))
			return nil
		},
	}
}

func overviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "overview",
		Usage: "Print today's overview: focus time, events, productivity score.",
		Action: func(c *cli.Context) error {
			st, err := loadState(c.String("state"))
			if err != nil {
				return fmt.Errorf("load state: %w", err)
			}

			svc := calendar.NewService()
			ov := svc.Overview(st.Events, st.Sessions, svc.Now())

			fmt.Printf("Focus time today:   %s\n", analytics.FormatDuration(ov.FocusTimeToday))
			fmt.Printf("Sessions today:     %d\n", len(ov.SessionsToday))
			fmt.Printf("Productivity score: %d%%\n", ov.ProductivityScore)

			fmt.Printf("Events today:       %d\n", len(ov.EventsToday))
			for _, e := range ov.EventsToday {
				fmt.Printf("  %s  [%s] %s\n", e.ScheduledTime.Format("15:04"), e.Type, e.Title)
			}
			fmt.Printf("Upcoming (2h):      %d\n", len(ov.UpcomingEvents))
			for _, e := range ov.UpcomingEvents {
				fmt.Printf("  %s  [%s] %s\n", e.ScheduledTime.Format("15:04"), e.Type, e.Title)
			}

			metrics := analytics.Metrics(st.Sessions, svc.Now())
			fmt.Printf("Current streak:     %d day(s)\n", metrics.CurrentStreak)
			fmt.Printf("Longest streak:     %d day(s)\n", metrics.LongestStreak)
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write all stored events to stdout as an .ics payload.",
		Action: func(c *cli.Context) error {
			st, err := loadState(c.String("state"))
			if err != nil {
				return fmt.Errorf("load state: %w", err)
			}

			svc := calendar.NewService()
			payload, err := svc.ExportICS(st.Events)
			if err != nil {
				return err
			}
			fmt.Print(payload)
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Poll the calendar every minute and notify on upcoming events.",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			svc := calendar.NewService()
			if errs := svc.ValidateConfig(*cfg); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(os.Stderr, "config:", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			statePath := c.String("state")
			notified := make(map[string]bool)

			sched := cron.New()
			_, err = sched.AddFunc("* * * * *", func() {
				st, lerr := loadState(statePath)
				if lerr != nil {
					appLog.Error("watch: load state failed", lerr)
					return
				}
				lead := cfg.Notifications.UpcomingEventMinutes
				for _, e := range svc.UpcomingEvents(st.Events, lead) {
					if notified[e.ID] {
						continue
					}
					notified[e.ID] = true
					appLog.Info("upcoming event", "title", e.Title, "at", e.ScheduledTime.Format("15:04"))
					if cfg.Notifications.Enabled {
						if nerr := beeep.Notify("focuscal", fmt.Sprintf("%s at %s", e.Title, e.ScheduledTime.Format("15:04")), ""); nerr != nil {
							appLog.Error("notification failed", nerr, "event", e.ID)
						}
					}
				}
			})
			if err != nil {
				return fmt.Errorf("schedule watch job: %w", err)
			}

			appLog.Info("focuscal watch started", "lead_minutes", cfg.Notifications.UpcomingEventMinutes)
			sched.Start()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			appLog.Info("signal received, shutting down", "signal", sig.String())

			ctx := sched.Stop()
			<-ctx.Done()
			return nil
		},
	}
}
