package main

import (
	"fmt"
	"strings"
	"time"

	"SocialFlow/internal/actions"
	"SocialFlow/internal/app"
	"SocialFlow/internal/backend"
	"SocialFlow/internal/calendar"
	"SocialFlow/internal/session"
	"SocialFlow/internal/ui"

	"github.com/spf13/cobra"
)

func newGenerateCmd(gf *globalFlags) *cobra.Command {
	var req actions.ContentRequest
	var fresh bool
	cmd := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Generate post variations",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			req.Topic = strings.Join(args, " ")
			texts, err := a.Generator.Content(cmd.Context(), req, fresh)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.Variations(texts))
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Platform, "platform", backend.Platforms[0], "platform ("+strings.Join(backend.Platforms, "|")+")")
	cmd.Flags().StringVar(&req.ContentType, "type", backend.ContentTypes[0], "content type ("+strings.Join(backend.ContentTypes, "|")+")")
	cmd.Flags().StringVar(&req.Tone, "tone", backend.Tones[0], "tone of voice")
	cmd.Flags().BoolVar(&fresh, "regenerate", false, "ignore previously generated results")
	return cmd
}

func newImagesCmd(gf *globalFlags) *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "images <prompt>",
		Short: "Generate images",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			urls, err := a.Generator.Images(cmd.Context(), strings.Join(args, " "), style)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Images(urls))
			return nil
		}),
	}
	cmd.Flags().StringVar(&style, "style", backend.ImageStyles[0], "image style ("+strings.Join(backend.ImageStyles, "|")+")")
	return cmd
}

func newBrandCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brand",
		Short: "Show or update your brand profile",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the saved brand profile",
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			brand, err := a.Brand.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Brand(brand))
			return nil
		}),
	}

	profile := actions.DefaultBrand()
	set := &cobra.Command{
		Use:   "set",
		Short: "Save the brand profile",
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			if err := a.Brand.Save(cmd.Context(), profile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.OK("Brand settings saved successfully!"))
			return nil
		}),
	}
	f := set.Flags()
	f.StringVar(&profile.BusinessName, "name", "", "business name")
	f.StringVar(&profile.Industry, "industry", "", "industry ("+strings.Join(actions.Industries, ", ")+")")
	f.StringVar(&profile.Description, "description", "", "what the business does")
	f.StringVar(&profile.Tone, "tone", profile.Tone, "brand tone")
	f.StringVar(&profile.TargetAudience, "audience", "", "target audience")
	f.StringSliceVar(&profile.BrandColors, "colors", profile.BrandColors, "brand colours, comma separated")

	cmd.AddCommand(get, set)
	return cmd
}

func newContentCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "List or add content",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your content",
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			contents, err := a.Library.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Contents(contents))
			return nil
		}),
	}

	var nc actions.NewContent
	var when string
	add := &cobra.Command{
		Use:   "add <body>",
		Short: "Add a post to the calendar",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			nc.Body = strings.Join(args, " ")
			if when != "" {
				t, ok := session.ParseTime(when)
				if !ok {
					return fmt.Errorf("invalid --at %q, use 2006-01-02T15:04", when)
				}
				nc.ScheduledAt = &t
			}
			id, err := a.Library.Add(cmd.Context(), nc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.OK("Added to calendar as #"+id))
			return nil
		}),
	}
	f := add.Flags()
	f.StringVar(&nc.Platform, "platform", backend.Platforms[0], "platform")
	f.StringVar(&nc.ContentType, "type", backend.ContentTypes[0], "content type")
	f.StringVar(&nc.ImageURL, "image", "", "image URL")
	f.StringVar(&when, "at", "", "schedule time, e.g. 2026-03-05T10:00")

	cmd.AddCommand(list, add)
	return cmd
}

func newCalendarCmd(gf *globalFlags) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the content calendar for a month",
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			now := time.Now()
			m := calendar.MonthOf(now)
			if month != "" {
				t, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --month %q, use YYYY-MM", month)
				}
				m = calendar.MonthOf(t)
			}
			contents, err := a.Library.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, ui.Calendar(m, calendar.Grid(m, contents), func(d calendar.Day) bool {
				return calendar.SameDay(d.Date, now, time.Local)
			}))
			if m.Contains(now) {
				if today := calendar.On(now, contents); len(today) > 0 {
					fmt.Fprintln(out, ui.Title("Today"))
					fmt.Fprintln(out, ui.Contents(today))
				}
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show, YYYY-MM")
	return cmd
}
