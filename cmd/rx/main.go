package main

import (
	"fmt"
	"os"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "login":
		err = cmdLogin(os.Args[2:])
	case "register":
		err = cmdRegister(os.Args[2:])
	case "logout":
		err = cmdLogout()
	case "whoami":
		err = cmdWhoami()
	case "catalog":
		err = cmdCatalog(os.Args[2:])
	case "cart":
		err = cmdCart(os.Args[2:])
	case "order":
		err = cmdOrder(os.Args[2:])
	case "profile":
		err = cmdProfile(os.Args[2:])
	case "rx":
		err = cmdPrescription(os.Args[2:])
	case "mcp":
		err = cmdMCP()
	case "config":
		err = cmdConfig()
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("rx %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rx - Online Pharmacy Client

Usage:
  rx <command> [arguments]

Account Commands:
  login <email>             Sign in (password from RX_PASSWORD or prompt)
  register <email> [role]   Create an account (role defaults to PATIENT)
  logout                    Sign out and forget the cart
  whoami                    Show the signed-in user

Catalog Commands:
  catalog list [form]       List medicines, optionally by dosage form
  catalog search <query>    Search medicines by name
  catalog show <id>         Show medicine details

Cart Commands:
  cart show                 Show the cart
  cart add <id> [qty]       Add a medicine
  cart update <item> <qty>  Change a line quantity
  cart remove <item>        Remove a line
  cart clear                Empty the cart

Order Commands:
  order create              Place an order from the cart
  order list                List orders
  order show <id>           Show an order

Profile Commands:
  profile show              Show the patient profile
  profile create <first> <last>
                            Create the patient profile
  profile update key=value...
                            Update profile fields

Prescription Commands:
  rx list                   List prescriptions
  rx show <id>              Show a prescription
  rx upload <file>          Upload a prescription image or PDF
  rx delete <id>            Delete a prescription
  rx download <id> [file]   Save a prescription file

Integration Commands:
  mcp                       Start MCP server on stdio

Other:
  config                    Show current configuration
  help                      Show this help message
  version                   Show version information

Examples:
  rx login asha@example.com
  rx catalog search paracetamol
  rx cart add 7c1e 2
  rx order create`)
}
