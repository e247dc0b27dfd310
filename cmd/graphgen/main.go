// README: graphgen converts an OSM XML extract into a routing graph description (JSON or YAML).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"campusride/internal/modules/routing"
)

func main() {
	in := flag.String("in", "", "OSM XML input file (required)")
	out := flag.String("out", "", "output file; stdout when empty")
	format := flag.String("format", "json", "output format: json or yaml")
	destination := flag.String("destination", "", "OSM node id to rename to -destination-id")
	destinationID := flag.String("destination-id", "college", "id given to the destination node")
	flag.Parse()

	log := logrus.New()
	if *in == "" {
		log.Fatal("-in is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		log.WithError(err).Fatal("open osm input")
	}
	defer f.Close()

	desc, err := routing.DescriptionFromOSM(context.Background(), f)
	if err != nil {
		log.WithError(err).Fatal("convert osm")
	}
	if *destination != "" {
		desc = desc.Rename(*destination, *destinationID)
		if _, err := routing.Load(desc, *destinationID); err != nil {
			log.WithError(err).Fatal("validate graph")
		}
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			log.WithError(err).Fatal("create output")
		}
		defer file.Close()
		w = file
	}

	if err := encode(w, desc, *format); err != nil {
		log.WithError(err).Fatal("write graph description")
	}
	log.WithFields(logrus.Fields{
		"nodes": len(desc.Nodes),
		"edges": len(desc.Edges),
	}).Info("graph description written")
}

func encode(w io.Writer, desc routing.Description, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(desc); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(desc)
	}
}
