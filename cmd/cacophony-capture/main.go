package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/tversteeg/cacophony"
	"github.com/tversteeg/cacophony/capture"
	"github.com/tversteeg/cacophony/oto"
	"github.com/tversteeg/cacophony/songfile"
	"github.com/tversteeg/cacophony/version"
)

func main() {
	bpm := flag.Int("bpm", 120, "Tempo of the captured score, in beats per minute.")
	length := flag.Float64("length", 1, "Length of each captured note, in beats.")
	volume := flag.Int("volume", -1, "Fixed volume 0-127 for every captured note; -1 uses the key velocity.")
	port := flag.String("port", "", "MIDI input port name prefix. The first port is used when empty.")
	list := flag.Bool("l", false, "List MIDI input ports and exit.")
	kind := flag.String("synth", "chiptune", "Synth kind: chiptune, soundfont or clatter.")
	waveform := flag.String("waveform", "sine", "Chiptune waveform: sine, sawtooth, square, triangle or pulse.")
	sf2 := flag.String("sf2", "", "Path to the SoundFont2 file for the soundfont synth.")
	bank := flag.Int("bank", 0, "SoundFont bank.")
	preset := flag.Int("preset", 0, "SoundFont preset.")
	scoreOut := flag.String("o", "capture.yml", "File where to save the captured score.")
	wavOut := flag.String("w", "", "Also render the captured score to this .wav file.")
	monitor := flag.Bool("m", true, "Play each captured note while recording.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}

	driver, err := rtmididrv.New()
	if err != nil {
		fatalf("could not open MIDI driver: %v", err)
	}
	defer driver.Close()
	ins, err := driver.Ins()
	if err != nil {
		fatalf("could not list MIDI inputs: %v", err)
	}
	if *list {
		for _, in := range ins {
			fmt.Println(in.String())
		}
		return
	}
	in := findInput(ins, *port)
	if in == nil {
		fatalf("no MIDI input matching %q; use -l to list ports", *port)
	}
	if err := in.Open(); err != nil {
		fatalf("could not open MIDI input %v: %v", in, err)
	}
	defer in.Close()

	synthConfig := songfile.Synth{Kind: *kind, Waveform: *waveform, SoundFont: *sf2, Bank: *bank, Preset: *preset}
	backend, err := synthConfig.Backend()
	if err != nil {
		fatalf("could not build the synth: %v", err)
	}
	synth := cacophony.NewSynthesizer(backend)
	track := cacophony.NewTrack(synth)
	recorder := capture.NewRecorder(track)
	recorder.SetNoteLength(*length)
	if *volume >= 0 {
		recorder.SetFixedVolume(*volume)
	}

	var monitorFunc func(cacophony.Note)
	if *monitor {
		audioContext, err := oto.NewContext()
		if err != nil {
			fatalf("could not acquire audio context: %v", err)
		}
		monitorFunc = func(note cacophony.Note) {
			buffer, err := synth.Render(note, *bpm)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not monitor note: %v\n", err)
				return
			}
			sink := audioContext.Output()
			sink.WriteAudio(buffer)
			go sink.Close() // drains in the background so the next note is not delayed
		}
	}

	stop, err := capture.Listen(in, recorder, monitorFunc)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("recording from %v at %v bpm, press enter to stop\n", in, *bpm)
	bufio.NewReader(os.Stdin).ReadString('\n')
	stop()

	file := &songfile.File{
		BPM:    *bpm,
		Tracks: []songfile.Track{{Synth: synthConfig, Notes: track.Notes}},
	}
	data, err := file.Yaml()
	if err != nil {
		fatalf("%v", err)
	}
	if err := os.WriteFile(*scoreOut, data, 0644); err != nil {
		fatalf("could not write score file %v: %v", *scoreOut, err)
	}
	fmt.Printf("saved %v notes to %v\n", len(track.Notes), *scoreOut)
	if *wavOut != "" {
		buffer, err := cacophony.NewComposition(*bpm, track).Render()
		if err != nil && buffer == nil {
			fatalf("render failed: %v", err)
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		wav, err := buffer.Wav(false)
		if err != nil {
			fatalf("could not generate .wav: %v", err)
		}
		if err := os.WriteFile(*wavOut, wav, 0644); err != nil {
			fatalf("could not write %v: %v", *wavOut, err)
		}
	}
}

func findInput(ins []drivers.In, prefix string) drivers.In {
	for _, in := range ins {
		if prefix == "" || strings.HasPrefix(in.String(), prefix) {
			return in
		}
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
