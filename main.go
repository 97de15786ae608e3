package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jexpense/importer/internal/config"
	"github.com/jexpense/importer/internal/csvimporter"
	"github.com/robfig/cron"
)

type Runner interface {
	Run() error
}

var runner Runner

func main() {
	singleRun := flag.Bool("single-run", false, "run importer once (disable cron)")
	configFile := flag.String("config", "./config.yml", "configuration file")
	secretsFile := flag.String("secrets", "./secrets.json", "secrets file")
	csvFile := flag.String("csv", "", "csv file to import (overrides config)")
	table := flag.String("table", "", "transactions table to write to (default from config)")
	force := flag.Bool("force", false, "ignore the upload watermark and process every row")
	help := flag.Bool("help", false, "show command help")

	flag.Parse()

	if *help {
		fmt.Println("jexpense csv importer")
		fmt.Println("jexpense [options]")
		flag.PrintDefaults()
		return
	}

	err := config.ReadConfig(*configFile, *secretsFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	importerConfig := config.CurrentImporterConfig()

	file := *csvFile
	if file == "" {
		file = importerConfig.CSVFile
	}

	if file == "" {
		fmt.Println("No csv file passed in")
		os.Exit(1)
	}

	csvRunner, err := csvimporter.NewImportCSVRunner(file, *table, *force || importerConfig.Force)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	runner = csvRunner

	if *singleRun || importerConfig.UpdateFrequency == "" {
		err := run()
		csvRunner.Close()

		if err != nil {
			os.Exit(1)
		}

		return
	}

	run()

	c := cron.New()
	c.AddFunc(importerConfig.UpdateFrequency, func() { run() })

	c.Start()

	select {}
}

func run() error {
	fmt.Println(time.Now().Format(time.RFC850))

	err := runner.Run()
	if err != nil {
		fmt.Println(err)
	}

	return err
}
