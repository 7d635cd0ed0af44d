package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/calinburloiu/microtonalist"
	"github.com/calinburloiu/microtonalist/format"
	"github.com/calinburloiu/microtonalist/midi"
	"github.com/calinburloiu/microtonalist/version"
)

func main() {
	yamlOut := flag.Bool("y", false, "Output the tuning list as YAML. This is the default when no other output is selected.")
	jsonOut := flag.Bool("j", false, "Output the tuning list as JSON.")
	outPath := flag.String("o", "", "File to write the tuning list to. By default it is written to standard output.")
	listPorts := flag.Bool("l", false, "List the available MIDI ports and exit.")
	outPort := flag.String("p", "", "Send the tunings to the first MIDI output port starting with this prefix. An empty prefix with -w picks the first port.")
	switchMode := flag.Bool("w", false, "Switch between the tunings of the composition from MIDI pedal presses instead of writing the tuning list.")
	inPort := flag.String("in", "", "MIDI input port prefix to listen on for tuning switches. Picks the first port when empty.")
	controller := flag.Uint("cc", uint(midi.DefaultSwitchController), "MIDI control change number that switches tunings.")
	deviceID := flag.Uint("d", uint(midi.DeviceIDAll), "MIDI device ID of the tuning dumps.")
	debug := flag.Bool("debug", false, "Log debug information.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	initLogger(*debug)
	if *listPorts {
		os.Exit(printPorts())
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *controller > 127 || *deviceID > 127 {
		fmt.Fprintln(os.Stderr, "MIDI control change numbers and device IDs are 7-bit values")
		os.Exit(1)
	}

	composition, err := readComposition(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read the composition: %v\n", err)
		os.Exit(1)
	}
	list, err := composition.TuningList()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not map the composition to tunings: %v\n", err)
		os.Exit(1)
	}
	slog.Debug("composition mapped", "composition", composition.Name, "tunings", len(list))

	if *switchMode {
		if err := runSwitcher(list, *outPort, *inPort, byte(*deviceID), uint8(*controller)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := writeTuningList(list, *outPath, *jsonOut && !*yamlOut); err != nil {
		fmt.Fprintf(os.Stderr, "could not write the tuning list: %v\n", err)
		os.Exit(1)
	}
}

func readComposition(path string) (*microtonalist.Composition, error) {
	if path == "" {
		return format.ReadComposition(os.Stdin, "")
	}
	return format.ReadCompositionFile(path)
}

func writeTuningList(list microtonalist.TuningList, outPath string, asJSON bool) error {
	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if asJSON {
		return format.WriteTuningListJSON(w, list)
	}
	return format.WriteTuningListYAML(w, list)
}

func printPorts() int {
	context, err := midi.NewContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer context.Close()
	ins, err := context.InPorts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not list MIDI inputs: %v\n", err)
		return 1
	}
	outs, err := context.OutPorts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not list MIDI outputs: %v\n", err)
		return 1
	}
	fmt.Printf("MIDI inputs:\n  %s\nMIDI outputs:\n  %s\n",
		strings.Join(ins, "\n  "), strings.Join(outs, "\n  "))
	return 0
}

func runSwitcher(list microtonalist.TuningList, outPrefix, inPrefix string, deviceID byte, controller uint8) error {
	context, err := midi.NewContext()
	if err != nil {
		return err
	}
	defer context.Close()
	out, err := context.OpenOut(outPrefix)
	if err != nil {
		return err
	}
	in, err := context.OpenIn(inPrefix)
	if err != nil {
		return err
	}
	send := func(msg gomidi.Message) error { return out.Send(msg) }
	switcher, err := midi.NewSwitcher(list, send, deviceID, controller)
	if err != nil {
		return err
	}
	stop, err := switcher.Listen(in)
	if err != nil {
		return fmt.Errorf("listening on MIDI input %q failed: %w", in.String(), err)
	}
	defer stop()
	if err := switcher.Start(); err != nil {
		return err
	}
	slog.Info("switching tunings on pedal presses, press ctrl-c to quit",
		"in", in.String(), "out", out.String(), "controller", controller)
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	return nil
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(h))
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Microtonalist tuner. Input a .yml or .json composition, output 12-key octave tunings or send them to a MIDI instrument.\nUsage: %s [flags] [composition]\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}
