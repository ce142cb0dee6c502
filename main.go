package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"orca-dataset/dataset"
	"orca-dataset/utils"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Expected 'prepare' or 'encode' subcommand")
		os.Exit(1)
	}
	_ = godotenv.Load()

	switch os.Args[1] {
	case "prepare":
		prepareCmd := flag.NewFlagSet("prepare", flag.ExitOnError)
		dataDir := prepareCmd.String("data", utils.GetEnv("DATASET_DATA_DIR", "data"), "Root directory of labeled recordings")
		outDir := prepareCmd.String("out", utils.GetEnv("DATASET_OUT_DIR", "data"), "Directory for features artifacts")
		overwrite := prepareCmd.Bool("overwrite", false, "Regenerate features, overwriting any existing feature files")
		seed := prepareCmd.Int64("seed", dataset.ShuffleSeed, "Seed for the split shuffle")
		prepareCmd.Parse(os.Args[2:])
		if err := prepare(*dataDir, *outDir, *overwrite, *seed); err != nil {
			fmt.Fprintf(os.Stderr, "prepare failed: %v\n", err)
			os.Exit(1)
		}
	case "encode":
		encodeCmd := flag.NewFlagSet("encode", flag.ExitOnError)
		featuresDir := encodeCmd.String("features", utils.GetEnv("DATASET_OUT_DIR", "data"), "Directory holding features artifacts")
		outDir := encodeCmd.String("out", utils.GetEnv("DATASET_ENCODER_DIR", "output"), "Directory for label encoder artifacts")
		encodeCmd.Parse(os.Args[2:])
		if err := encodeLabels(*featuresDir, *outDir); err != nil {
			fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Expected 'prepare' or 'encode' subcommand")
		os.Exit(1)
	}
}
