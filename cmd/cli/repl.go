package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
)

// The REPL always plays as one local user
const (
	localUserID   = "1"
	localUsername = "localuser"
)

const (
	msgBanner   = "Tactas RNG CLI Mode\nType 'pull' to pull an item, 'inv' for inventory, 'ach' for achievements, 'daily' or 'weekly' to claim coins, 'stats' for totals, 'exit' to quit."
	msgPrompt   = "> "
	msgUsage    = "Commands: pull, inv, ach, daily, weekly, stats, exit"
	msgGoodbye  = "Goodbye!"
	msgEmptyInv = "Inventory is empty."
	msgNoAch    = "No achievements yet."
	msgNoStats  = "No stats yet. Pull first."
)

var titleCaser = cases.Title(language.English)

type repl struct {
	svc gacha.Service
	out io.Writer
}

func newREPL(svc gacha.Service, out io.Writer) *repl {
	return &repl{svc: svc, out: out}
}

// Run reads commands until exit or EOF. Command errors are printed, not returned.
func (r *repl) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(r.out, msgBanner)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, msgPrompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if cmd == "exit" {
			fmt.Fprintln(r.out, msgGoodbye)
			return nil
		}
		if err := r.exec(ctx, cmd); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
}

func (r *repl) exec(ctx context.Context, cmd string) error {
	switch cmd {
	case "pull":
		res, err := r.svc.Pull(ctx, localUserID, localUsername)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "You pulled: %s (%s)\n", res.Item, rarityLabel(res.Rarity))
		printAchievements(r.out, res.NewAchievements)

	case "inv":
		inv, err := r.svc.Inventory(ctx, localUserID)
		if err != nil {
			return err
		}
		if len(inv) == 0 {
			fmt.Fprintln(r.out, msgEmptyInv)
			return nil
		}
		for _, e := range inv {
			fmt.Fprintf(r.out, "%s (%s) x%d\n", e.ItemName, rarityLabel(e.Rarity), e.Amount)
		}

	case "ach":
		list, err := r.svc.Achievements(ctx, localUserID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(r.out, msgNoAch)
			return nil
		}
		printAchievements(r.out, list)

	case "daily", "weekly":
		claim := r.svc.ClaimDaily
		if cmd == "weekly" {
			claim = r.svc.ClaimWeekly
		}
		res, err := claim(ctx, localUserID, localUsername)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Claimed %d coins. Balance: %d\n", res.Amount, res.Coins)

	case "stats":
		st, err := r.svc.UserStats(ctx, localUserID)
		if errors.Is(err, domain.ErrUserNotFound) {
			fmt.Fprintln(r.out, msgNoStats)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Pulls: %d\nCoins: %d\nUnique items: %d\nTotal items: %d\nAchievements: %d\n",
			st.Pulls, st.Coins, st.DistinctItems, st.TotalItems, st.Achievements)

	case "":
	default:
		fmt.Fprintln(r.out, msgUsage)
	}
	return nil
}

func printAchievements(w io.Writer, list []domain.Achievement) {
	for _, a := range list {
		fmt.Fprintf(w, "🏅 %s: %s\n", a.Name, a.Description)
	}
}

func rarityLabel(r domain.Rarity) string {
	return titleCaser.String(string(r))
}
