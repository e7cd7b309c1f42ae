// Package tui is the terminal front end of the storefront. It draws the
// header, the menu and the cart panel from a bridge.View and turns key
// presses into bridge commands.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/letsfood/storefront/internal/bridge"
	"github.com/letsfood/storefront/internal/catalog"
)

// Runner executes one bridge command for a device.
type Runner interface {
	Run(ctx context.Context, deviceID string, cmd func(context.Context, *bridge.Bridge) error) error
}

type focusArea int

const (
	focusMenu focusArea = iota
	focusCart
)

// viewMsg carries the outcome of a bridge command back into Update.
type viewMsg struct {
	view bridge.View
	err  error
	form bridge.Form
}

// App is the bubbletea model.
type App struct {
	ctx      context.Context
	runner   Runner
	deviceID string
	menu     []catalog.Item
	log      zerolog.Logger

	view     bridge.View
	message  *bridge.Message
	cursor   int
	cartOpen bool
	cartSel  int
	focus    focusArea
	auth     authModal

	width int
}

// NewApp builds the model for deviceID.
func NewApp(ctx context.Context, runner Runner, deviceID string, menu *catalog.Catalog, log zerolog.Logger) *App {
	return &App{
		ctx:      ctx,
		runner:   runner,
		deviceID: deviceID,
		menu:     menu.Items(),
		log:      log,
		auth:     newAuthModal(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.run("", func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.Render(ctx), nil
	})
}

// run wraps a bridge command as a tea.Cmd.
func (a *App) run(form bridge.Form, cmd func(context.Context, *bridge.Bridge) (bridge.View, error)) tea.Cmd {
	return func() tea.Msg {
		var msg viewMsg
		msg.form = form
		err := a.runner.Run(a.ctx, a.deviceID, func(ctx context.Context, b *bridge.Bridge) error {
			msg.view, msg.err = cmd(ctx, b)
			return nil
		})
		if err != nil {
			msg.err = err
		}
		return msg
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case viewMsg:
		return a, a.applyView(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.auth.open {
			return a, a.updateAuth(msg)
		}
		return a, a.updateMain(msg)
	}
	return a, nil
}

func (a *App) applyView(msg viewMsg) tea.Cmd {
	if msg.err != nil && msg.view.Message == nil {
		// The runner itself failed; nothing was rendered.
		a.log.Error().Err(msg.err).Msg("command failed")
		form := msg.form
		if form == "" {
			form = bridge.FormCart
		}
		a.message = &bridge.Message{Form: form, Kind: bridge.MessageError, Text: bridge.UserText(form, msg.err)}
		return nil
	}
	a.view = msg.view
	a.message = msg.view.Message
	if n := len(a.view.Cart.Lines); a.cartSel >= n {
		a.cartSel = max(0, n-1)
	}
	if a.auth.open && msg.err == nil && (msg.form == bridge.FormSignIn || msg.form == bridge.FormSignUp) {
		a.auth.reset()
		a.auth.hide()
	}
	return nil
}

func (a *App) updateAuth(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.auth.hide()
		return nil
	case "tab":
		return a.auth.toggle()
	case "up", "shift+tab":
		return a.auth.setFocus(a.auth.focus - 1)
	case "down":
		return a.auth.setFocus(a.auth.focus + 1)
	case "enter":
		return a.submitAuth()
	}
	return a.auth.update(msg)
}

func (a *App) submitAuth() tea.Cmd {
	if a.auth.form == bridge.FormSignUp {
		form := bridge.SignUpForm{
			Name:                 a.auth.value(0),
			Email:                a.auth.value(1),
			Password:             a.auth.value(2),
			PasswordConfirmation: a.auth.value(3),
		}
		return a.run(bridge.FormSignUp, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
			return b.OnSubmitSignup(ctx, form)
		})
	}
	email, password := a.auth.value(0), a.auth.value(1)
	return a.run(bridge.FormSignIn, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
		return b.OnSubmitSignin(ctx, email, password)
	})
}

func (a *App) updateMain(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "s":
		a.message = nil
		return a.auth.show()
	case "l":
		if !a.view.Header.SignedIn {
			return nil
		}
		return a.run(bridge.FormSignIn, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
			return b.OnSignOut(ctx)
		})
	case "c":
		a.cartOpen = !a.cartOpen
		if a.cartOpen {
			a.focus = focusCart
		} else {
			a.focus = focusMenu
		}
		return nil
	case "o":
		return a.run(bridge.FormCart, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
			return b.OnCheckout(ctx)
		})
	case "up", "k":
		a.move(-1)
		return nil
	case "down", "j":
		a.move(1)
		return nil
	}

	if a.focus == focusCart {
		return a.updateCart(msg)
	}
	switch msg.String() {
	case "a", "enter":
		if len(a.menu) == 0 {
			return nil
		}
		item := a.menu[a.cursor]
		return a.run(bridge.FormCart, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
			return b.OnAddClicked(ctx, item.ID, item.Title, item.Price)
		})
	}
	return nil
}

func (a *App) updateCart(msg tea.KeyMsg) tea.Cmd {
	lines := a.view.Cart.Lines
	if len(lines) == 0 {
		return nil
	}
	id := lines[a.cartSel].ID
	switch msg.String() {
	case "+", "=":
		return a.run(bridge.FormCart, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
			return b.OnIncrement(ctx, id)
		})
	case "-":
		return a.run(bridge.FormCart, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
			return b.OnDecrement(ctx, id)
		})
	case "x", "delete":
		return a.run(bridge.FormCart, func(ctx context.Context, b *bridge.Bridge) (bridge.View, error) {
			return b.OnRemove(ctx, id)
		})
	}
	return nil
}

func (a *App) move(delta int) {
	if a.focus == focusCart {
		if n := len(a.view.Cart.Lines); n > 0 {
			a.cartSel = (a.cartSel + delta + n) % n
		}
		return
	}
	if n := len(a.menu); n > 0 {
		a.cursor = (a.cursor + delta + n) % n
	}
}

func (a *App) View() string {
	sections := []string{a.renderHeader(), a.renderMenu()}
	if a.cartOpen {
		sections = append(sections, a.renderCart())
	}
	if a.auth.open {
		sections = append(sections, a.auth.view(a.message))
	} else if a.message != nil && (a.message.Form != bridge.FormCart || !a.cartOpen) {
		sections = append(sections, renderMessage(a.message))
	}
	sections = append(sections, dimStyle.Render(a.hints()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderHeader() string {
	account := accountStyle.Render(a.view.Header.Label)
	if a.view.Header.Label == "" {
		account = accountStyle.Render("Sign in")
	}
	badge := badgeStyle.Render(fmt.Sprintf("cart %d", a.view.Cart.Badge))
	return lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render("LET'S FOOD"), "   ", account, "   ", badge)
}

func (a *App) renderMenu() string {
	var b strings.Builder
	for i, item := range a.menu {
		line := fmt.Sprintf("%-24s %8s", item.Title, fmt.Sprintf("$%.2f", item.Price))
		if i == a.cursor && a.focus == focusMenu {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) renderCart() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your cart") + "\n")
	if a.view.Cart.Empty {
		b.WriteString(dimStyle.Render("Your cart is empty"))
	} else {
		for i, li := range a.view.Cart.Lines {
			line := fmt.Sprintf("%-20s x%-3d $%.2f", li.Title, li.Qty, li.Subtotal)
			if i == a.cartSel {
				b.WriteString(selectedStyle.Render("› " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("\nTotal: $%.2f", a.view.Cart.Total))
	}
	if a.message != nil && a.message.Form == bridge.FormCart {
		b.WriteString("\n" + renderMessage(a.message))
	}
	if r := a.view.Receipt; r != nil {
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%d items, $%.2f", r.TotalQuantity, r.TotalPrice)))
	}
	return panelStyle.Render(b.String())
}

func (a *App) hints() string {
	if a.focus == focusCart {
		return "↑/↓ select · + / - quantity · x remove · o checkout · c close cart · q quit"
	}
	hint := "↑/↓ select · a add · c cart · o checkout · s sign in"
	if a.view.Header.SignedIn {
		hint += " · l sign out"
	}
	return hint + " · q quit"
}

func renderMessage(m *bridge.Message) string {
	if m.Kind == bridge.MessageError {
		return errorStyle.Render(m.Text)
	}
	return successStyle.Render(m.Text)
}
