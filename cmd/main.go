package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/delivery"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/nbr"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/scene"
	"github.com/joho/godotenv"
)

func printBanner() {
	figure1 := figure.NewFigure("Fire", "isometric1", true)
	figure2 := figure.NewFigure("Guardian", "isometric1", true)
	bannercolor.Red(figure1.String())
	bannercolor.Red(figure2.String())
	fmt.Println()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fire-guardian <scene-path> <output.tif>        evaluate one scene")
	fmt.Fprintln(os.Stderr, "  fire-guardian --batch <scenes-dir> <out-dir>   evaluate every scene in a directory")
	fmt.Fprintln(os.Stderr, "  fire-guardian --fetch <scene-id> <dest-dir>    download a scene from the archive")
}

// failureKind names the error class for the CLI message, so operators can
// tell a misnamed scene from a broken grid from a disk problem.
func failureKind(err error) string {
	var bandNotFound *scene.BandNotFoundError
	if errors.As(err, &bandNotFound) {
		return "band-not-found"
	}
	var shapeMismatch *nbr.ShapeMismatchError
	if errors.As(err, &shapeMismatch) {
		return "shape-mismatch"
	}
	return "i/o"
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "\033[31m%s error: %s\033[0m\n", failureKind(err), err.Error())
	os.Exit(1)
}

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		// Env vars may already be set by the shell; a missing .env is fine.
		godotenv.Load("../.env")
	}

	args := os.Args[1:]
	if len(args) != 2 && len(args) != 3 {
		printUsage()
		os.Exit(2)
	}

	printBanner()

	switch args[0] {
	case "--batch":
		if len(args) != 3 {
			printUsage()
			os.Exit(2)
		}
		summaries, err := delivery.EvaluateBatch(args[1], args[2])
		if err != nil {
			fail(err)
		}
		bannercolor.Green("Evaluated %d scenes. Report written to %s/report.csv", len(summaries), args[2])
	case "--fetch":
		if len(args) != 3 {
			printUsage()
			os.Exit(2)
		}
		scenePath, err := scene.DownloadScene(context.Background(), args[1], args[2])
		if err != nil {
			fail(err)
		}
		bannercolor.Green("Scene downloaded to %s", scenePath)
	default:
		if len(args) != 2 {
			printUsage()
			os.Exit(2)
		}
		summary, err := delivery.EvaluateScene(args[0], args[1])
		if err != nil {
			fail(err)
		}
		bannercolor.Green("NBR raster written to %s", args[1])
		bannercolor.Green("Valid pixels: %d, burned pixels: %d (%.1f%%), mean NBR: %.3f",
			summary.ValidPixels, summary.BurnedPixels, summary.BurnedRatio*100, summary.MeanNBR)
	}
}
