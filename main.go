package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ethanolivertroy/nist-grc/cmd"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `NIST GRC - SP 800-53 control analysis and framework mapping

Usage:
  nist-grc [command] [args...]

Commands:
  (default)   Interactive GRC analyst chat
  agent       Chat with the GRC agent (one-shot with a query argument)
  report      Render a coverage and gap report for a control set
  help        Show this help
  version     Show version

Examples:
  nist-grc                                        # Interactive chat
  nist-grc agent "explain AC-2"                   # One-shot query
  nist-grc agent -data ./data                     # Chat over downloaded OSCAL data
  nist-grc report -baseline moderate AC-2,IA-2    # Gap report vs moderate baseline
  nist-grc report -data ./data -baseline high AC-2 IA-2 SI-4

Environment:
  LLM_PROVIDER      LLM provider: gemini (default), vertex, or ollama
  LLM_MODEL         Model name (e.g., gemini-2.0-flash, llama3.2)
  GEMINI_API_KEY    Required for Gemini provider
  VERTEX_PROJECT    GCP project ID (required for Vertex AI)
  VERTEX_LOCATION   GCP region (required for Vertex AI, e.g., us-central1)
  OLLAMA_URL        Ollama server URL (default: http://localhost:11434)

Data:
  Without -data, a built-in sample of the SP 800-53 catalog is used.
  With -data DIR, the OSCAL JSON documents in DIR are loaded:
    sp800-53-catalog.json, sp800-53b-{low,moderate,high}.json,
    csf-2.0.json, csf-mappings.json
`)
}

func main() {
	// No args = default interactive chat
	if len(os.Args) < 2 {
		if err := cmd.RunAgent("", nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch os.Args[1] {
	case "agent":
		agentCmd := flag.NewFlagSet("agent", flag.ExitOnError)
		dataDir := agentCmd.String("data", "", "Directory with OSCAL JSON documents (default: built-in sample)")
		agentCmd.Parse(os.Args[2:])

		if err := cmd.RunAgent(*dataDir, agentCmd.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "report":
		reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
		dataDir := reportCmd.String("data", "", "Directory with OSCAL JSON documents (default: built-in sample)")
		baseline := reportCmd.String("baseline", "moderate", "Target baseline: low, moderate, or high")
		reportCmd.Parse(os.Args[2:])

		if err := cmd.RunReport(*dataDir, *baseline, reportCmd.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "--help", "-h":
		printUsage()

	case "version", "--version":
		fmt.Println("nist-grc v0.1.0")

	default:
		// Unknown command - treat as query to agent
		if err := cmd.RunAgent("", os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
