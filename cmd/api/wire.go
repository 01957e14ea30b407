// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"log/slog"

	"github.com/taibuivan/sociallink/internal/analytics"
	"github.com/taibuivan/sociallink/internal/api"
	"github.com/taibuivan/sociallink/internal/billing"
	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/content/file"
	"github.com/taibuivan/sociallink/internal/content/form"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/content/pagesettings"
	"github.com/taibuivan/sociallink/internal/datasource"
	"github.com/taibuivan/sociallink/internal/platform/config"
	"github.com/taibuivan/sociallink/internal/profile"
	"github.com/taibuivan/sociallink/internal/users/account"
	"github.com/taibuivan/sociallink/internal/users/admin"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

// paymentGateways builds the providers whose keys are configured. An absent
// provider answers 503 from its billing routes.
func paymentGateways(cfg *config.Config, log *slog.Logger) billing.Gateways {
	gateways := billing.Gateways{}

	if cfg.StripeSecretKey != "" {
		gateways.Checkout = billing.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeReturnURL)
	}
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		gateways.Orders = billing.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
		gateways.RazorpaySecret = cfg.RazorpayKeySecret
	}

	log.Info("payment_gateways_configured",
		slog.Bool("stripe", gateways.Checkout != nil),
		slog.Bool("razorpay", gateways.Orders != nil),
	)
	return gateways
}

/*
wireHandlers builds every service on top of source and returns the HTTP handler set.

Description: The admin settings service doubles as the signup gate and the
default theme source. The analytics service is the click tracker for links
and the page-view recorder for profiles.
*/
func wireHandlers(cfg *config.Config, source *datasource.DataSource, tokens auth.TokenProvider, gateways billing.Gateways) api.Handlers {
	evaluator := policy.NewEvaluator()

	// ── 1. Accounts ──
	settingsService := admin.NewSettingsService(source.Platform)
	authService := auth.NewService(
		source.Users,
		source.Sessions,
		source.ResetTokens,
		tokens,
		settingsService,
		auth.NewLogNotifier(cfg.PublicBaseURL),
	)

	// ── 2. Content ──
	linkService := link.NewService(source.Links, authService, evaluator)
	fileService := file.NewService(source.Files, source.Blobs, authService, evaluator)
	formService := form.NewService(source.Forms, source.Responses, authService, evaluator)
	pageService := pagesettings.NewService(source.PageSettings, authService, evaluator, settingsService)

	// ── 3. Analytics and the public page ──
	analyticsService := analytics.NewService(source.Events, source.Users, linkService, fileService, formService)
	profileService := profile.NewService(profile.Sources{
		Users:    source.Users,
		Links:    source.Links,
		Files:    fileService,
		Forms:    formService,
		Settings: pageService,
		Views:    analyticsService,
	}, cfg.PublicBaseURL)

	// ── 4. Billing and operators ──
	billingService := billing.NewService(source.Orders, source.Users, gateways)
	adminService := admin.NewService(source.Users, source.Sessions, source.Links, analyticsService, []admin.CascadeStep{
		{Name: "links", Delete: source.Links.DeleteByOwner},
		{Name: "files", Delete: fileService.DeleteAllForOwner},
		{Name: "forms", Delete: formService.DeleteAllForOwner},
		{Name: "page_settings", Delete: source.PageSettings.DeleteByOwner},
		{Name: "events", Delete: analyticsService.DeleteByOwner},
		{Name: "orders", Delete: billingService.DeleteByOwner},
	})

	return api.Handlers{
		Auth:         auth.NewHandler(authService, cfg.IsProduction()),
		Account:      account.NewHandler(account.NewService(authService)),
		Profile:      profile.NewHandler(profileService),
		Links:        link.NewHandler(linkService, analyticsService),
		Files:        file.NewHandler(fileService),
		Forms:        form.NewHandler(formService),
		Analytics:    analytics.NewHandler(analyticsService),
		PageSettings: pagesettings.NewHandler(pageService),
		Billing:      billing.NewHandler(billingService),
		Admin:        admin.NewHandler(adminService, settingsService),
		Accounts:     authService,
	}
}
