package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his tax lots: what he holds, at what cost,
			and what he has gained or lost, realized and unrealized.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request. Numbers must come from the Bookkeeper, never invent them.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst is a market expert grounded on search results.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products and institutions,
		and of the latest news about companies and funds.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find about anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search to
			ground your assertions in a solid truth.
				`}}},
		},
	}
}

// NewBookkeeper is the expert in charge of reading the user's lot book.
func NewBookkeeper() *Expert {
	lib := []Function{LotsReport, GainsReport}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's tax-lot book.
		He can list the lots of a holding with their cost basis, and compute realized and
		unrealized gains per holding.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's tax-lot book.
				You know how to use the Tools to extract relevant information about the user's lots.
				You are part of a team of experts, yours is everything recorded in the lot book.
				They might ask you questions in approximative language, figure out what they meant.

				Use the available tools to get information about the user's lots
				  - lots of a holding, with acquisition dates and cost basis
				  - realized and unrealized gains
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// LotsReport renders the lots of one (account, symbol) for the model.
var LotsReport = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "LotsReport",
		Description: `LotsReport lists the tax lots of one holding: acquisition date, status,
		remaining and original quantities, cost basis, and per-share cost.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"account": {
					Type:        genai.TypeString,
					Description: "The account holding the security.",
				},
				"symbol": {
					Type:        genai.TypeString,
					Description: "The security's ticker symbol.",
				},
			},
			Required: []string{"account", "symbol"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of the holding's lots.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		account, aok := args["account"].(string)
		symbol, sok := args["symbol"].(string)
		if !aok || !sok {
			return &genai.FunctionResponse{
				ID: id, Name: "LotsReport",
				Response: map[string]any{"error": "arguments 'account' and 'symbol' must be strings"},
			}
		}
		book, err := DecodeBook()
		if err != nil {
			return &genai.FunctionResponse{
				ID: id, Name: "LotsReport",
				Response: map[string]any{"error": err.Error()},
			}
		}
		return &genai.FunctionResponse{
			ID: id, Name: "LotsReport",
			Response: map[string]any{"output": renderer.LotsMarkdown(book, account, symbol)},
		}
	},
}

// GainsReport renders the realized and unrealized gains over the whole book.
var GainsReport = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "GainsReport",
		Description: `GainsReport computes realized gains per holding over the whole lot book.
		Unrealized figures are reported as n/a: the book carries no market prices.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted gains table, one row per holding.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		book, err := DecodeBook()
		if err != nil {
			return &genai.FunctionResponse{
				ID: id, Name: "GainsReport",
				Response: map[string]any{"error": err.Error()},
			}
		}
		return &genai.FunctionResponse{
			ID: id, Name: "GainsReport",
			Response: map[string]any{"output": renderer.GainsMarkdown(book, nil)},
		}
	},
}

// DecodeBook decodes the lot book from the application's default book file.
// If the file does not exist, it returns a new empty book.
func DecodeBook() (*taxlot.LotBook, error) {
	bookFile := "lots.jsonl"
	f, err := os.Open(bookFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// If the file doesn't exist, it's an empty book.
			return taxlot.NewLotBook(), nil
		}
		return nil, fmt.Errorf("could not open book file %q: %w", bookFile, err)
	}
	defer f.Close()

	book, err := taxlot.DecodeLotBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", bookFile, err)
	}
	return book, nil
}
