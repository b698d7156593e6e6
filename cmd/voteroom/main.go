package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"voteroom/internal/api"
	"voteroom/internal/config"
	"voteroom/internal/constants"
	"voteroom/internal/realtime"
	"voteroom/internal/token"
	"voteroom/internal/types"
)

const (
	colorReset  = constants.ColorReset
	colorBold   = constants.ColorBold
	colorDim    = constants.ColorDim
	colorCyan   = constants.ColorCyan
	colorGreen  = constants.ColorGreen
	colorYellow = constants.ColorYellow
	colorRed    = constants.ColorRed
	colorPurple = constants.ColorPurple
)

func printBanner() {
	fmt.Println()
	fmt.Printf("  %s%svoteroom%s %sv%s%s\n", colorBold, colorCyan, colorReset, colorBold, constants.Version, colorReset)
	fmt.Printf("  %sTerminal client for the room voting service%s\n", colorDim, colorReset)
	fmt.Println()
}

func printErr(msg string) {
	fmt.Printf("  %s%s%s\n", colorRed, msg, colorReset)
}

func printField(label, value, valueColor string) {
	fmt.Printf("  %s%-12s%s %s%s%s\n", colorDim, label, colorReset, valueColor, value, colorReset)
}

func usage() {
	fmt.Println("Usage: voteroom [-config path] [-v] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  signup <name>                 register and sign in")
	fmt.Println("  signin <name>                 sign in")
	fmt.Println("  logout                        revoke the session")
	fmt.Println("  whoami                        show the signed-in user")
	fmt.Println("  rooms                         list rooms")
	fmt.Println("  create-room <name>            create a room")
	fmt.Println("  games <room-id>               list games in a room")
	fmt.Println("  vote <room-id> <game-id>      vote for a game")
	fmt.Println("  random <room-id>              pick a random game from the votes")
	fmt.Println("  watch <room-id>               stream room events until interrupted")
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		printErr("config: " + err.Error())
		os.Exit(1)
	}

	store, err := token.NewStoreFromConfig(cfg.Token, log)
	if err != nil {
		printErr("token store: " + err.Error())
		os.Exit(1)
	}
	defer store.Close()

	client, err := api.New(cfg, store, log)
	if err != nil {
		printErr(err.Error())
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, cfg, store, client, args); err != nil {
		if apiErr, ok := api.AsError(err); ok && apiErr.Status == 401 {
			printErr("not signed in (run: voteroom signin <name>)")
		} else {
			printErr(err.Error())
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, store *token.Store, client *api.Client, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "signup":
		if len(rest) != 1 {
			return fmt.Errorf("usage: voteroom signup <name>")
		}
		resp, err := client.SignUp(ctx, rest[0], readPassword())
		if err != nil {
			return err
		}
		printField("Signed up", rest[0], colorGreen)
		printField("User ID", resp.UserID, colorDim)
		return nil

	case "signin":
		if len(rest) != 1 {
			return fmt.Errorf("usage: voteroom signin <name>")
		}
		resp, err := client.SignIn(ctx, rest[0], readPassword())
		if err != nil {
			return err
		}
		printField("Signed in", rest[0], colorGreen)
		printField("User ID", resp.UserID, colorDim)
		return nil

	case "logout":
		if err := client.Logout(ctx); err != nil {
			return err
		}
		fmt.Printf("  %sSigned out%s\n", colorGreen, colorReset)
		return nil

	case "whoami":
		me, err := client.Me(ctx)
		if err != nil {
			return err
		}
		printField("Name", me.Name, colorCyan)
		printField("User ID", me.ID, colorDim)
		return nil

	case "rooms":
		rooms, err := client.Rooms(ctx)
		if err != nil {
			return err
		}
		if len(rooms) == 0 {
			fmt.Printf("  %sno rooms%s\n", colorDim, colorReset)
			return nil
		}
		for _, room := range rooms {
			fmt.Printf("  %s%s%s  %s%s%s\n", colorCyan, room.ID, colorReset, colorBold, room.Name, colorReset)
		}
		return nil

	case "create-room":
		if len(rest) != 1 {
			return fmt.Errorf("usage: voteroom create-room <name>")
		}
		room, err := client.CreateRoom(ctx, rest[0])
		if err != nil {
			return err
		}
		printField("Room", room.Name, colorGreen)
		printField("Room ID", room.ID, colorDim)
		return nil

	case "games":
		if len(rest) != 1 {
			return fmt.Errorf("usage: voteroom games <room-id>")
		}
		games, err := client.Games(ctx, rest[0])
		if err != nil {
			return err
		}
		if len(games) == 0 {
			fmt.Printf("  %sno games%s\n", colorDim, colorReset)
			return nil
		}
		for _, game := range games {
			fmt.Printf("  %s%s%s  %s\n", colorDim, game.ID, colorReset, game.Title)
		}
		return nil

	case "vote":
		if len(rest) != 2 {
			return fmt.Errorf("usage: voteroom vote <room-id> <game-id>")
		}
		vote, err := client.AddVote(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		printField("Voted", vote.GameID, colorGreen)
		return nil

	case "random":
		if len(rest) != 1 {
			return fmt.Errorf("usage: voteroom random <room-id>")
		}
		gameID, err := client.RandomGame(ctx, rest[0])
		if err != nil {
			return err
		}
		printField("Picked", gameID, colorPurple)
		return nil

	case "watch":
		if len(rest) != 1 {
			return fmt.Errorf("usage: voteroom watch <room-id>")
		}
		return watch(cfg, store, rest[0])

	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func readPassword() string {
	fmt.Printf("  %sPassword:%s ", colorDim, colorReset)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// watch subscribes to every event type and prints events as they come
// in. The session handles drops on its own; ctrl-c tears it down.
func watch(cfg *config.Config, store *token.Store, roomID string) error {
	printBanner()
	printField("Watching", roomID, colorCyan)
	fmt.Printf("  %sctrl-c to stop%s\n\n", colorDim, colorReset)

	session := realtime.NewSession(cfg, store, roomID, slog.Default())

	eventTypes := []types.EventType{
		types.EventConnected,
		types.EventRoomUpdated,
		types.EventParticipantAdded,
		types.EventParticipantLeft,
		types.EventGameAdded,
		types.EventGameDeleted,
		types.EventVoteAdded,
		types.EventVoteDeleted,
		types.EventResultsUpdated,
	}
	for _, et := range eventTypes {
		session.On(et, printEvent)
	}

	session.Connect()
	if session.State() == realtime.StateIdle {
		session.Disconnect()
		return fmt.Errorf("not signed in (run: voteroom signin <name>)")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	session.Disconnect()
	fmt.Printf("\n  %sstopped%s\n", colorDim, colorReset)
	return nil
}

func printEvent(evt types.Event) {
	ts := time.Unix(evt.Ts, 0).Format(constants.TimeFormatShort)

	var detail string
	switch evt.Type {
	case types.EventConnected:
		var p types.ConnectedPayload
		if evt.DecodePayload(&p) == nil {
			detail = "user " + p.UserID
		}
	case types.EventRoomUpdated:
		var p types.RoomUpdatedPayload
		if evt.DecodePayload(&p) == nil {
			detail = "renamed to " + p.Name
		}
	case types.EventParticipantAdded, types.EventParticipantLeft:
		var p types.ParticipantPayload
		if evt.DecodePayload(&p) == nil {
			detail = "user " + p.UserID
		}
	case types.EventGameAdded, types.EventGameDeleted:
		var p types.GamePayload
		if evt.DecodePayload(&p) == nil {
			detail = p.Title
			if detail == "" {
				detail = "game " + p.GameID
			}
		}
	case types.EventVoteAdded, types.EventVoteDeleted:
		var p types.VotePayload
		if evt.DecodePayload(&p) == nil {
			detail = "game " + p.GameID
		}
	case types.EventResultsUpdated:
		var p types.ResultsPayload
		if evt.DecodePayload(&p) == nil {
			detail = "game " + p.GameID
		}
	}

	fmt.Printf("  %s%s%s  %s%-18s%s %s\n", colorDim, ts, colorReset, colorYellow, evt.Type, colorReset, detail)
}
