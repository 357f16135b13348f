package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"canopus/internal/domain/entity"
	domainerrors "canopus/internal/domain/errors"
	"canopus/internal/errors"
	"canopus/internal/infra/asset"
	"canopus/internal/usecase"

	"go.uber.org/fx"
)

// Supported subcommands:
// - login / logout / whoami:   session management
// - works / work-add / work-status / staff-pay: job management
// - menu / menu-add / categories:               menu management
// - gallery / gallery-add / gallery-rm:         gallery management
// - weddings / wedding-add / wedding-rm:        wedding showcase
// - users / user-add / user-role / user-rm:     user administration

type cliParams struct {
	fx.In

	Session  usecase.SessionUsecase
	Works    usecase.WorkUsecase
	Menu     usecase.MenuUsecase
	Gallery  usecase.GalleryUsecase
	Weddings usecase.WeddingUsecase
	Users    usecase.UserUsecase
	Uploader *asset.Uploader `optional:"true"`
}

func run(params cliParams) error {
	if len(os.Args) < 2 {
		printUsage()

		return errors.New("missing subcommand")
	}

	ctx := context.Background()

	// Restore any persisted session before dispatching, so every
	// command runs authenticated when credentials are on disk.
	if _, err := params.Session.Restore(ctx); err != nil {
		return errors.Wrap(err, "session restore failed")
	}

	return runSubcommand(ctx, params, os.Args[1], os.Args[2:])
}

func runSubcommand(ctx context.Context, params cliParams, name string, args []string) error {
	switch name {
	case "login":
		return cmdLogin(ctx, params, args)
	case "logout":
		return params.Session.Logout(ctx)
	case "whoami":
		return cmdWhoami(params)
	case "works":
		return cmdWorks(ctx, params)
	case "work-add":
		return cmdWorkAdd(ctx, params, args)
	case "work-status":
		return cmdWorkStatus(ctx, params, args)
	case "staff-pay":
		return cmdStaffPay(ctx, params, args)
	case "menu":
		return cmdMenu(ctx, params, args)
	case "menu-add":
		return cmdMenuAdd(ctx, params, args)
	case "categories":
		return cmdCategories(ctx, params)
	case "gallery":
		return cmdGallery(ctx, params, args)
	case "gallery-add":
		return cmdGalleryAdd(ctx, params, args)
	case "gallery-rm":
		return cmdGalleryRemove(ctx, params, args)
	case "weddings":
		return cmdWeddings(ctx, params)
	case "wedding-add":
		return cmdWeddingAdd(ctx, params, args)
	case "wedding-rm":
		return cmdWeddingRemove(ctx, params, args)
	case "users":
		return cmdUsers(ctx, params)
	case "user-add":
		return cmdUserAdd(ctx, params, args)
	case "user-role":
		return cmdUserRole(ctx, params, args)
	case "user-rm":
		return cmdUserRemove(ctx, params, args)
	default:
		printUsage()

		return errors.Errorf("unknown subcommand: %s", name)
	}
}

func cmdLogin(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := cmd.String("email", "", "Account email")
	password := cmd.String("password", "", "Account password")
	cmd.Parse(args)

	user, err := params.Session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)

	return nil
}

func cmdWhoami(params cliParams) error {
	user := params.Session.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in")

		return nil
	}
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	caps := entity.CapabilitiesFor(user.Role)
	if caps.Has(entity.CapManageUsers) {
		fmt.Println("Can administer users")
	}

	return nil
}

func cmdWorks(ctx context.Context, params cliParams) error {
	works, err := params.Works.Fetch(ctx)
	if err != nil {
		return err
	}
	for _, w := range works {
		fmt.Printf("%s  %-24s due=%s status=%s payment=%s staff=%d budget=%.2f\n",
			w.ID, w.Title, w.DueDate.Format("2006-01-02"), w.Status,
			w.OverallPaymentStatus, len(w.AssignedTo), w.Budget)
	}

	return nil
}

func cmdWorkAdd(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("work-add", flag.ExitOnError)
	title := cmd.String("title", "", "Work title")
	desc := cmd.String("desc", "", "Description")
	due := cmd.String("due", "", "Due date (YYYY-MM-DD)")
	budget := cmd.Float64("budget", 0, "Budget")
	staff := cmd.String("staff", "", "Comma-separated staff user IDs")
	cmd.Parse(args)

	dueDate, err := time.Parse("2006-01-02", *due)
	if err != nil {
		return errors.Wrap(err, "invalid due date")
	}

	work, err := params.Works.Create(ctx, usecase.CreateWorkInput{
		Title:       *title,
		Description: *desc,
		DueDate:     dueDate,
		Budget:      *budget,
		AssignedTo:  splitIDs(*staff),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created work %s\n", work.ID)

	return nil
}

func cmdWorkStatus(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("work-status", flag.ExitOnError)
	id := cmd.String("id", "", "Work ID")
	status := cmd.String("status", "", "New status (pending, in-progress, completed, due)")
	cmd.Parse(args)

	work, err := params.Works.UpdateStatus(ctx, *id, entity.WorkStatus(*status))
	if err != nil {
		return err
	}
	fmt.Printf("Work %s is now %s\n", work.ID, work.Status)

	return nil
}

func cmdStaffPay(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("staff-pay", flag.ExitOnError)
	workID := cmd.String("work", "", "Work ID")
	staffID := cmd.String("staff", "", "Staff user ID")
	amount := cmd.Float64("amount", 0, "Amount paid")
	status := cmd.String("status", "pending", "Payment status (pending, completed)")
	cmd.Parse(args)

	work, err := params.Works.UpdateStaffPayment(ctx, *workID, *staffID, usecase.StaffPaymentInput{
		AmountPaid:    *amount,
		PaymentStatus: entity.PaymentStatus(*status),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Work %s overall payment: %s\n", work.ID, work.OverallPaymentStatus)

	return nil
}

func cmdMenu(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("menu", flag.ExitOnError)
	page := cmd.Int("page", 1, "Page number")
	cmd.Parse(args)

	items, err := params.Menu.Fetch(ctx, *page)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%s  %-24s %8.2f  %s\n", item.ID, item.Name, item.Price, item.Category)
	}
	fmt.Printf("Page %d of %d\n", params.Menu.Page(), params.Menu.TotalPages())

	return nil
}

func cmdMenuAdd(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("menu-add", flag.ExitOnError)
	name := cmd.String("name", "", "Dish name")
	price := cmd.Float64("price", 0, "Price")
	category := cmd.String("category", "", "Category name")
	image := cmd.String("image", "", "Image URL (already hosted)")
	file := cmd.String("file", "", "Local image file to upload")
	cmd.Parse(args)

	imageURL, err := resolveImage(ctx, params, *image, *file)
	if err != nil {
		return err
	}

	item, err := params.Menu.Create(ctx, usecase.MenuItemInput{
		Name:     *name,
		Price:    *price,
		Category: *category,
		Image:    imageURL,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created menu item %s\n", item.ID)

	return nil
}

func cmdCategories(ctx context.Context, params cliParams) error {
	categories, err := params.Menu.FetchCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Println(c)
	}

	return nil
}

func cmdGallery(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("gallery", flag.ExitOnError)
	page := cmd.Int("page", 1, "Page number")
	cmd.Parse(args)

	images, err := params.Gallery.Fetch(ctx, *page)
	if err != nil {
		return err
	}
	for _, img := range images {
		fmt.Printf("%s  %s\n", img.ID, img.Image)
	}
	fmt.Printf("Page %d of %d\n", params.Gallery.Page(), params.Gallery.TotalPages())

	return nil
}

func cmdGalleryAdd(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("gallery-add", flag.ExitOnError)
	image := cmd.String("image", "", "Image URL (already hosted)")
	file := cmd.String("file", "", "Local image file to upload")
	cmd.Parse(args)

	imageURL, err := resolveImage(ctx, params, *image, *file)
	if err != nil {
		return err
	}

	return params.Gallery.Add(ctx, imageURL)
}

func cmdGalleryRemove(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("gallery-rm", flag.ExitOnError)
	id := cmd.String("id", "", "Gallery image ID")
	cmd.Parse(args)

	return params.Gallery.Remove(ctx, *id)
}

func cmdWeddings(ctx context.Context, params cliParams) error {
	weddings, err := params.Weddings.Fetch(ctx)
	if err != nil {
		return err
	}
	for _, w := range weddings {
		fmt.Printf("%s  %-24s %s\n", w.ID, w.Title, w.Image)
	}

	return nil
}

func cmdWeddingAdd(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("wedding-add", flag.ExitOnError)
	title := cmd.String("title", "", "Wedding title")
	desc := cmd.String("desc", "", "Description")
	image := cmd.String("image", "", "Image URL (already hosted)")
	file := cmd.String("file", "", "Local image file to upload")
	cmd.Parse(args)

	imageURL, err := resolveImage(ctx, params, *image, *file)
	if err != nil {
		return err
	}

	wedding, err := params.Weddings.Create(ctx, usecase.WeddingInput{
		Title:       *title,
		Description: *desc,
		Image:       imageURL,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created wedding %s\n", wedding.ID)

	return nil
}

func cmdWeddingRemove(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("wedding-rm", flag.ExitOnError)
	id := cmd.String("id", "", "Wedding ID")
	cmd.Parse(args)

	return params.Weddings.Remove(ctx, *id)
}

func cmdUsers(ctx context.Context, params cliParams) error {
	users, err := params.Users.Fetch(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s  %-20s %-28s role=%-10s completed=%d\n",
			u.ID, u.Name, u.Email, u.Role, u.TotalWorkCompleted)
	}

	return nil
}

func cmdUserAdd(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("user-add", flag.ExitOnError)
	name := cmd.String("name", "", "Full name")
	email := cmd.String("email", "", "Email address")
	role := cmd.String("role", "staff", "Role (superadmin, admin, staff)")
	cmd.Parse(args)

	user, err := params.Users.Create(ctx, usecase.CreateUserInput{
		Name:  *name,
		Email: *email,
		Role:  entity.Role(*role),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created user %s; invitation sent to %s\n", user.ID, user.Email)

	return nil
}

func cmdUserRole(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("user-role", flag.ExitOnError)
	id := cmd.String("id", "", "User ID")
	role := cmd.String("role", "", "New role (superadmin, admin, staff)")
	cmd.Parse(args)

	user, err := params.Users.UpdateRole(ctx, *id, entity.Role(*role))
	if err != nil {
		return err
	}
	fmt.Printf("User %s is now %s\n", user.ID, user.Role)

	return nil
}

func cmdUserRemove(ctx context.Context, params cliParams, args []string) error {
	cmd := flag.NewFlagSet("user-rm", flag.ExitOnError)
	id := cmd.String("id", "", "User ID")
	cmd.Parse(args)

	return params.Users.Remove(ctx, *id)
}

// resolveImage returns the hosted URL for an image flag pair: either a
// URL passed through, or a local file uploaded to the asset host.
func resolveImage(ctx context.Context, params cliParams, imageURL, file string) (string, error) {
	if imageURL != "" {
		return imageURL, nil
	}
	if file == "" {
		return "", errors.New("either -image or -file is required")
	}
	if params.Uploader == nil {
		return "", errors.New("no asset host configured; pass -image with a hosted URL")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrap(err, "failed to read image file")
	}

	url, err := params.Uploader.Upload(ctx, file, data)
	if err != nil {
		return "", err
	}
	fmt.Printf("Uploaded %s -> %s\n", file, url)

	return url, nil
}

func splitIDs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}

	return ids
}

// friendlyError prefers the taxonomy's user-facing message when one is
// available.
func friendlyError(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if details := appErr.Details(); details != "" {
			return fmt.Sprintf("%s (%s)", appErr.Message(), details)
		}

		return appErr.Message()
	}

	return err.Error()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: canopus <command> [flags]

Session:
  login -email <email> -password <password>
  logout
  whoami

Works:
  works
  work-add -title <t> -due <YYYY-MM-DD> -budget <n> -staff <id,id,...> [-desc <d>]
  work-status -id <id> -status <status>
  staff-pay -work <id> -staff <id> -amount <n> -status <pending|completed>

Menu:
  menu [-page <n>]
  menu-add -name <n> -price <n> -category <c> (-image <url> | -file <path>)
  categories

Gallery:
  gallery [-page <n>]
  gallery-add (-image <url> | -file <path>)
  gallery-rm -id <id>

Weddings:
  weddings
  wedding-add -title <t> (-image <url> | -file <path>) [-desc <d>]
  wedding-rm -id <id>

Users:
  users
  user-add -name <n> -email <e> [-role <r>]
  user-role -id <id> -role <r>
  user-rm -id <id>`)
}
