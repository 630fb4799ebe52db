package registry

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	redis "github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"

	"github.com/favbox/lfx/components"
	"github.com/favbox/lfx/components/document/loader/csv"
	"github.com/favbox/lfx/components/document/loader/directory"
	"github.com/favbox/lfx/components/document/loader/firecrawl"
	urlloader "github.com/favbox/lfx/components/document/loader/url"
	"github.com/favbox/lfx/components/embedding"
	hfembed "github.com/favbox/lfx/components/embedding/huggingface"
	oaiembed "github.com/favbox/lfx/components/embedding/openai"
	flatindexer "github.com/favbox/lfx/components/indexer/flat"
	milvusindexer "github.com/favbox/lfx/components/indexer/milvus"
	pgvecindexer "github.com/favbox/lfx/components/indexer/pgvector"
	redisindexer "github.com/favbox/lfx/components/indexer/redisvec"
	"github.com/favbox/lfx/components/model"
	oaimodel "github.com/favbox/lfx/components/model/openai"
	"github.com/favbox/lfx/components/prompt"
	flatretriever "github.com/favbox/lfx/components/retriever/flat"
	milvusretriever "github.com/favbox/lfx/components/retriever/milvus"
	pgvecretriever "github.com/favbox/lfx/components/retriever/pgvector"
	redisretriever "github.com/favbox/lfx/components/retriever/redisvec"
	"github.com/favbox/lfx/components/tool/calculator"
	"github.com/favbox/lfx/components/tool/notion"
	"github.com/favbox/lfx/components/tool/websearch"
	"github.com/favbox/lfx/components/transcription/assemblyai"
	"github.com/favbox/lfx/schema"
)

// builtinBuilders 内置组件清单。注册表装配时逐个注册，禁用项被跳过。
func builtinBuilders() []Builder {
	return []Builder{
		calculatorBuilder(),
		webSearchBuilder(),
		notionSearchBuilder(),
		csvLoaderBuilder(),
		directoryLoaderBuilder(),
		urlLoaderBuilder(),
		firecrawlBuilder(),
		assemblyAIBuilder(),
		openAIChatBuilder(),
		openAIEmbeddingsBuilder(),
		huggingFaceEmbeddingsBuilder(),
		promptTemplateBuilder(),
		flatIndexerBuilder(),
		flatRetrieverBuilder(),
		milvusIndexerBuilder(),
		milvusRetrieverBuilder(),
		redisIndexerBuilder(),
		redisRetrieverBuilder(),
		pgvectorIndexerBuilder(),
		pgvectorRetrieverBuilder(),
	}
}

// embeddingHandle 取出上游注入的嵌入器句柄。
func embeddingHandle(in components.Inputs, key string) embedding.Embedder {
	emb, _ := in[key].(embedding.Embedder)
	return emb
}

// docsFromInputs 把上游记录列表转换为文档列表。
func docsFromInputs(in components.Inputs, key string) []*schema.Document {
	list := in.DataList(key)
	docs := make([]*schema.Document, 0, len(list))
	for _, d := range list {
		docs = append(docs, d.ToDocument())
	}
	return docs
}

// docsToDataList 把检索结果转换为记录列表。
func docsToDataList(docs []*schema.Document) []*schema.Data {
	list := make([]*schema.Data, 0, len(docs))
	for _, doc := range docs {
		list = append(list, schema.DataFromDocument(doc))
	}
	return list
}

func calculatorBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        calculator.ToolName,
			DisplayName: "Calculator",
			Description: "Evaluate a basic arithmetic expression.",
			Kind:        components.ComponentOfTool,
			Inputs: []components.Field{
				{Name: "expression", DisplayName: "Expression", Type: components.FieldTypeStr, Required: true},
			},
			Outputs: []components.Output{
				{Name: "result", DisplayName: "Result", Types: []string{string(EnvelopeData)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			args, err := sonic.MarshalString(map[string]any{
				"expression": in.String("expression"),
			})
			if err != nil {
				return nil, err
			}
			out, err := calculator.NewCalculator().InvokableRun(ctx, args)
			if err != nil {
				return nil, err
			}
			return NewDataEnvelope(out), nil
		},
	}
}

func webSearchBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        websearch.ToolName,
			DisplayName: "Google Search",
			Description: "Search the web with Google Custom Search.",
			Kind:        components.ComponentOfSearch,
			Inputs: []components.Field{
				{Name: "api_key", DisplayName: "API Key", Type: components.FieldTypeSecret, Required: true, Secret: true},
				{Name: "cse_id", DisplayName: "CSE ID", Type: components.FieldTypeSecret, Required: true, Secret: true},
				{Name: "query", DisplayName: "Query", Type: components.FieldTypeMultiline, Required: true},
				{Name: "num_results", DisplayName: "Number of Results", Type: components.FieldTypeInt,
					Default: websearch.DefaultNumResults, Range: &websearch.NumResultsRange},
			},
			Outputs: []components.Output{
				{Name: "results", DisplayName: "Results", Types: []string{string(EnvelopeFrame)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			apiKey, err := in.RequireString("api_key")
			if err != nil {
				return nil, err
			}
			cseID, err := in.RequireString("cse_id")
			if err != nil {
				return nil, err
			}
			query, err := in.RequireString("query")
			if err != nil {
				return nil, err
			}

			s, err := websearch.NewSearch(ctx, &websearch.Config{
				APIKey:     apiKey,
				CSEID:      cseID,
				NumResults: in.Int("num_results", websearch.DefaultNumResults),
			})
			if err != nil {
				return nil, err
			}
			frame, err := s.SearchFrame(ctx, query, 0)
			if err != nil {
				return nil, err
			}
			return NewFrameEnvelope(frame), nil
		},
	}
}

func notionSearchBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        notion.ToolName,
			DisplayName: "Notion Search",
			Description: "Search pages and databases in a Notion workspace.",
			Kind:        components.ComponentOfSearch,
			Inputs: []components.Field{
				{Name: "token", DisplayName: "Integration Token", Type: components.FieldTypeSecret, Required: true, Secret: true},
				{Name: "query", DisplayName: "Query", Type: components.FieldTypeStr, Required: true},
				{Name: "filter_type", DisplayName: "Object Type", Type: components.FieldTypeDropdown,
					Options: []string{"", "page", "database"}, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "results", DisplayName: "Results", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			token, err := in.RequireString("token")
			if err != nil {
				return nil, err
			}
			query, err := in.RequireString("query")
			if err != nil {
				return nil, err
			}

			s, err := notion.NewSearch(ctx, &notion.Config{
				Token:      token,
				FilterType: in.String("filter_type"),
			})
			if err != nil {
				return nil, err
			}
			results, err := s.SearchPages(ctx, query)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(results), nil
		},
	}
}

func csvLoaderBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "csv_loader",
			DisplayName: "CSV to Data",
			Description: "Convert CSV content into a list of records.",
			Kind:        components.ComponentOfLoader,
			Inputs: []components.Field{
				{Name: "file_path", DisplayName: "CSV File Path", Type: components.FieldTypeFile},
				{Name: "text", DisplayName: "CSV String", Type: components.FieldTypeMultiline},
				{Name: "text_key", DisplayName: "Text Key", Type: components.FieldTypeStr,
					Default: schema.DefaultTextKey, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "data_list", DisplayName: "Data List", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			l, err := csv.NewLoader(&csv.Config{
				FilePath: in.String("file_path"),
				Text:     in.String("text"),
				TextKey:  in.String("text_key"),
			})
			if err != nil {
				return nil, err
			}
			records, err := l.Load(ctx)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(records), nil
		},
	}
}

func directoryLoaderBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "directory_loader",
			DisplayName: "Directory",
			Description: "Load matching files from a directory into records.",
			Kind:        components.ComponentOfLoader,
			Inputs: []components.Field{
				{Name: "path", DisplayName: "Path", Type: components.FieldTypeStr, Required: true},
				{Name: "extensions", DisplayName: "File Extensions", Type: components.FieldTypeStr, Advanced: true},
				{Name: "recursive", DisplayName: "Recursive", Type: components.FieldTypeBool, Advanced: true},
				{Name: "load_hidden", DisplayName: "Load Hidden Files", Type: components.FieldTypeBool, Advanced: true},
				{Name: "max_concurrency", DisplayName: "Max Concurrency", Type: components.FieldTypeInt, Advanced: true},
				{Name: "silent_errors", DisplayName: "Silent Errors", Type: components.FieldTypeBool, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "data_list", DisplayName: "Data List", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			path, err := in.RequireString("path")
			if err != nil {
				return nil, err
			}

			l, err := directory.NewLoader(&directory.Config{
				Path:           path,
				Extensions:     in.StringSlice("extensions"),
				Recursive:      in.Bool("recursive", false),
				LoadHidden:     in.Bool("load_hidden", false),
				MaxConcurrency: in.Int("max_concurrency", 1),
				SilentErrors:   in.Bool("silent_errors", false),
			})
			if err != nil {
				return nil, err
			}
			records, err := l.Load(ctx)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(records), nil
		},
	}
}

func urlLoaderBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "url_loader",
			DisplayName: "URL",
			Description: "Fetch one or more URLs into records.",
			Kind:        components.ComponentOfLoader,
			Inputs: []components.Field{
				{Name: "urls", DisplayName: "URLs", Type: components.FieldTypeStr, Required: true},
			},
			Outputs: []components.Output{
				{Name: "data_list", DisplayName: "Data List", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			urls := in.StringSlice("urls")
			if urls == nil {
				if single := strings.TrimSpace(in.String("urls")); single != "" {
					urls = []string{single}
				}
			}

			l, err := urlloader.NewLoader(&urlloader.Config{URLs: urls})
			if err != nil {
				return nil, err
			}
			records, err := l.Load(ctx)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(records), nil
		},
	}
}

func firecrawlBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "firecrawl_scraper",
			DisplayName: "Firecrawl Scrape",
			Description: "Scrape a single page through the Firecrawl API.",
			Kind:        components.ComponentOfLoader,
			Inputs: []components.Field{
				{Name: "api_key", DisplayName: "API Key", Type: components.FieldTypeSecret, Required: true, Secret: true},
				{Name: "url", DisplayName: "URL", Type: components.FieldTypeStr, Required: true},
				{Name: "only_main_content", DisplayName: "Only Main Content", Type: components.FieldTypeBool, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "data_list", DisplayName: "Data List", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			apiKey, err := in.RequireString("api_key")
			if err != nil {
				return nil, err
			}
			pageURL, err := in.RequireString("url")
			if err != nil {
				return nil, err
			}

			l, err := firecrawl.NewLoader(&firecrawl.Config{
				APIKey:          apiKey,
				URL:             pageURL,
				OnlyMainContent: in.Bool("only_main_content", false),
			})
			if err != nil {
				return nil, err
			}
			records, err := l.Load(ctx)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(records), nil
		},
	}
}

func assemblyAIBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "assemblyai_transcriber",
			DisplayName: "AssemblyAI Transcription",
			Description: "Submit an audio URL and poll the transcript until done.",
			Kind:        components.ComponentOfTranscription,
			Inputs: []components.Field{
				{Name: "api_key", DisplayName: "API Key", Type: components.FieldTypeSecret, Required: true, Secret: true},
				{Name: "audio_url", DisplayName: "Audio URL", Type: components.FieldTypeStr, Required: true},
				{Name: "polling_interval", DisplayName: "Polling Interval", Type: components.FieldTypeFloat,
					Default: 3.0, Advanced: true, Range: &assemblyai.PollIntervalRange},
				{Name: "speaker_labels", DisplayName: "Speaker Labels", Type: components.FieldTypeBool, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "transcription_result", DisplayName: "Transcription Result", Types: []string{string(EnvelopeData)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			apiKey, err := in.RequireString("api_key")
			if err != nil {
				return nil, err
			}
			audioURL, err := in.RequireString("audio_url")
			if err != nil {
				return nil, err
			}

			t, err := assemblyai.NewTranscriber(&assemblyai.Config{
				APIKey:        apiKey,
				PollInterval:  time.Duration(in.Float("polling_interval", 3) * float64(time.Second)),
				SpeakerLabels: in.Bool("speaker_labels", false),
			})
			if err != nil {
				return nil, err
			}
			out, err := t.Transcribe(ctx, audioURL)
			if err != nil {
				return nil, err
			}
			return NewDataEnvelope(out), nil
		},
	}
}

func openAIChatBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "openai_chat",
			DisplayName: "OpenAI",
			Description: "Generate a reply with the OpenAI chat completions API.",
			Kind:        components.ComponentOfChatModel,
			Inputs: []components.Field{
				{Name: "api_key", DisplayName: "API Key", Type: components.FieldTypeSecret, Required: true, Secret: true},
				{Name: "model", DisplayName: "Model", Type: components.FieldTypeStr, Required: true},
				{Name: "input", DisplayName: "Input", Type: components.FieldTypeMultiline, Required: true},
				{Name: "system_message", DisplayName: "System Message", Type: components.FieldTypeMultiline, Advanced: true},
				{Name: "temperature", DisplayName: "Temperature", Type: components.FieldTypeFloat, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "message", DisplayName: "Message", Types: []string{string(EnvelopeMessage)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			apiKey, err := in.RequireString("api_key")
			if err != nil {
				return nil, err
			}
			modelName, err := in.RequireString("model")
			if err != nil {
				return nil, err
			}
			input, err := in.RequireString("input")
			if err != nil {
				return nil, err
			}

			cm, err := oaimodel.NewChatModel(ctx, &oaimodel.ChatModelConfig{
				APIKey: apiKey,
				Model:  modelName,
			})
			if err != nil {
				return nil, err
			}

			var messages []*schema.Message
			if system := in.String("system_message"); system != "" {
				messages = append(messages, schema.NewSystemMessage(system))
			}
			messages = append(messages, schema.NewUserMessage(input))

			reply, err := cm.Generate(ctx, messages, chatOptions(in)...)
			if err != nil {
				return nil, err
			}
			return NewMessageEnvelope(reply), nil
		},
	}
}

func openAIEmbeddingsBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "openai_embeddings",
			DisplayName: "OpenAI Embeddings",
			Description: "Embed text with the OpenAI embeddings API.",
			Kind:        components.ComponentOfEmbedding,
			Inputs: []components.Field{
				{Name: "api_key", DisplayName: "API Key", Type: components.FieldTypeSecret, Required: true, Secret: true},
				{Name: "model", DisplayName: "Model", Type: components.FieldTypeStr, Advanced: true},
				{Name: "text", DisplayName: "Text", Type: components.FieldTypeMultiline, Required: true},
			},
			Outputs: []components.Output{
				{Name: "embedding", DisplayName: "Embedding", Types: []string{string(EnvelopeData)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			apiKey, err := in.RequireString("api_key")
			if err != nil {
				return nil, err
			}
			text, err := in.RequireString("text")
			if err != nil {
				return nil, err
			}

			emb, err := oaiembed.NewEmbedder(ctx, &oaiembed.EmbedderConfig{
				APIKey: apiKey,
				Model:  in.String("model"),
			})
			if err != nil {
				return nil, err
			}
			return embedToEnvelope(ctx, emb, text)
		},
	}
}

func huggingFaceEmbeddingsBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "huggingface_embeddings",
			DisplayName: "HuggingFace Embeddings",
			Description: "Embed text with the HuggingFace inference API.",
			Kind:        components.ComponentOfEmbedding,
			Inputs: []components.Field{
				{Name: "api_key", DisplayName: "API Token", Type: components.FieldTypeSecret, Required: true, Secret: true},
				{Name: "model", DisplayName: "Model", Type: components.FieldTypeStr, Advanced: true},
				{Name: "text", DisplayName: "Text", Type: components.FieldTypeMultiline, Required: true},
			},
			Outputs: []components.Output{
				{Name: "embedding", DisplayName: "Embedding", Types: []string{string(EnvelopeData)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			apiKey, err := in.RequireString("api_key")
			if err != nil {
				return nil, err
			}
			text, err := in.RequireString("text")
			if err != nil {
				return nil, err
			}

			emb, err := hfembed.NewEmbedder(ctx, &hfembed.EmbedderConfig{
				APIKey: apiKey,
				Model:  in.String("model"),
			})
			if err != nil {
				return nil, err
			}
			return embedToEnvelope(ctx, emb, text)
		},
	}
}

// embedToEnvelope 单条文本向量化并封装为记录。
func embedToEnvelope(ctx context.Context, emb embedding.Embedder, text string) (*Envelope, error) {
	vectors, err := emb.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return NewDataEnvelope(schema.NewData(map[string]any{
		schema.DefaultTextKey: text,
		"embedding":           vectors[0],
	})), nil
}

func promptTemplateBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "prompt_template",
			DisplayName: "Prompt Template",
			Description: "Render a prompt template into a message.",
			Kind:        components.ComponentOfPrompt,
			Inputs: []components.Field{
				{Name: "template", DisplayName: "Template", Type: components.FieldTypeMultiline, Required: true},
				{Name: "format", DisplayName: "Format", Type: components.FieldTypeDropdown,
					Default: "f-string", Options: []string{"f-string", "go-template", "jinja2"}},
				{Name: "variables", DisplayName: "Variables", Type: components.FieldTypeHandle,
					Options: []string{string(EnvelopeData)}},
			},
			Outputs: []components.Output{
				{Name: "prompt", DisplayName: "Prompt", Types: []string{string(EnvelopeMessage)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			templateText, err := in.RequireString("template")
			if err != nil {
				return nil, err
			}

			format := prompt.FString
			switch in.String("format") {
			case "go-template":
				format = prompt.GoTemplate
			case "jinja2":
				format = prompt.Jinja2
			}

			tpl, err := prompt.NewPromptTemplate(&prompt.Config{
				Template: templateText,
				Format:   format,
			})
			if err != nil {
				return nil, err
			}

			variables := map[string]any{}
			if d, ok := in.Data("variables"); ok {
				for _, key := range d.Keys() {
					v, _ := d.Get(key)
					variables[key] = v
				}
			} else if m, ok := in["variables"].(map[string]any); ok {
				variables = m
			}

			msg, err := tpl.Format(ctx, variables)
			if err != nil {
				return nil, err
			}
			return NewMessageEnvelope(msg), nil
		},
	}
}

func flatIndexerBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "flat_indexer",
			DisplayName: "Local Index",
			Description: "Embed records and persist them into a local index.",
			Kind:        components.ComponentOfIndexer,
			Inputs: []components.Field{
				{Name: "directory", DisplayName: "Directory", Type: components.FieldTypeStr, Required: true},
				{Name: "index_name", DisplayName: "Index Name", Type: components.FieldTypeStr,
					Default: flatindexer.DefaultIndexName, Advanced: true},
				{Name: "embedding", DisplayName: "Embedding", Type: components.FieldTypeHandle,
					Required: true, Options: []string{"Embeddings"}},
				{Name: "ingest_data", DisplayName: "Ingest Data", Type: components.FieldTypeHandle,
					Required: true, Options: []string{string(EnvelopeData), string(EnvelopeDataList)}},
			},
			Outputs: []components.Output{
				{Name: "ids", DisplayName: "Stored IDs", Types: []string{string(EnvelopeData)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			dir, err := in.RequireString("directory")
			if err != nil {
				return nil, err
			}

			idx, err := flatindexer.NewIndexer(ctx, &flatindexer.IndexerConfig{
				Directory: dir,
				IndexName: in.String("index_name"),
				Embedding: embeddingHandle(in, "embedding"),
			})
			if err != nil {
				return nil, err
			}
			ids, err := idx.Store(ctx, docsFromInputs(in, "ingest_data"))
			if err != nil {
				return nil, err
			}
			return NewDataEnvelope(schema.NewData(map[string]any{"ids": ids})), nil
		},
	}
}

func flatRetrieverBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "flat_retriever",
			DisplayName: "Local Index Search",
			Description: "Search a local index for similar records.",
			Kind:        components.ComponentOfRetriever,
			Inputs: []components.Field{
				{Name: "directory", DisplayName: "Directory", Type: components.FieldTypeStr, Required: true},
				{Name: "index_name", DisplayName: "Index Name", Type: components.FieldTypeStr,
					Default: flatretriever.DefaultIndexName, Advanced: true},
				{Name: "embedding", DisplayName: "Embedding", Type: components.FieldTypeHandle,
					Required: true, Options: []string{"Embeddings"}},
				{Name: "query", DisplayName: "Query", Type: components.FieldTypeMultiline, Required: true},
				{Name: "number_of_results", DisplayName: "Number of Results", Type: components.FieldTypeInt,
					Default: flatretriever.DefaultTopK, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "results", DisplayName: "Results", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			dir, err := in.RequireString("directory")
			if err != nil {
				return nil, err
			}
			query, err := in.RequireString("query")
			if err != nil {
				return nil, err
			}

			r, err := flatretriever.NewRetriever(ctx, &flatretriever.RetrieverConfig{
				Directory: dir,
				IndexName: in.String("index_name"),
				Embedding: embeddingHandle(in, "embedding"),
				TopK:      in.Int("number_of_results", flatretriever.DefaultTopK),
			})
			if err != nil {
				return nil, err
			}
			docs, err := r.Retrieve(ctx, query)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(docsToDataList(docs)), nil
		},
	}
}

func milvusIndexerBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "milvus_indexer",
			DisplayName: "Milvus",
			Description: "Embed records and store them in a Milvus collection.",
			Kind:        components.ComponentOfIndexer,
			Inputs: []components.Field{
				{Name: "client", DisplayName: "Client", Type: components.FieldTypeHandle, Required: true,
					Options: []string{"MilvusClient"}},
				{Name: "collection", DisplayName: "Collection", Type: components.FieldTypeStr,
					Default: milvusindexer.DefaultCollection},
				{Name: "embedding", DisplayName: "Embedding", Type: components.FieldTypeHandle,
					Required: true, Options: []string{"Embeddings"}},
				{Name: "ingest_data", DisplayName: "Ingest Data", Type: components.FieldTypeHandle,
					Required: true, Options: []string{string(EnvelopeData), string(EnvelopeDataList)}},
			},
			Outputs: []components.Output{
				{Name: "ids", DisplayName: "Stored IDs", Types: []string{string(EnvelopeData)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			cli, _ := in["client"].(milvusclient.Client)
			idx, err := milvusindexer.NewIndexer(ctx, &milvusindexer.IndexerConfig{
				Client:     cli,
				Collection: in.String("collection"),
				Embedding:  embeddingHandle(in, "embedding"),
			})
			if err != nil {
				return nil, err
			}
			ids, err := idx.Store(ctx, docsFromInputs(in, "ingest_data"))
			if err != nil {
				return nil, err
			}
			return NewDataEnvelope(schema.NewData(map[string]any{"ids": ids})), nil
		},
	}
}

func milvusRetrieverBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "milvus_retriever",
			DisplayName: "Milvus Search",
			Description: "Search a Milvus collection for similar records.",
			Kind:        components.ComponentOfRetriever,
			Inputs: []components.Field{
				{Name: "client", DisplayName: "Client", Type: components.FieldTypeHandle, Required: true,
					Options: []string{"MilvusClient"}},
				{Name: "collection", DisplayName: "Collection", Type: components.FieldTypeStr,
					Default: milvusretriever.DefaultCollection},
				{Name: "embedding", DisplayName: "Embedding", Type: components.FieldTypeHandle,
					Required: true, Options: []string{"Embeddings"}},
				{Name: "query", DisplayName: "Query", Type: components.FieldTypeMultiline, Required: true},
				{Name: "number_of_results", DisplayName: "Number of Results", Type: components.FieldTypeInt,
					Default: milvusretriever.DefaultTopK, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "results", DisplayName: "Results", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			query, err := in.RequireString("query")
			if err != nil {
				return nil, err
			}

			cli, _ := in["client"].(milvusclient.Client)
			r, err := milvusretriever.NewRetriever(ctx, &milvusretriever.RetrieverConfig{
				Client:     cli,
				Collection: in.String("collection"),
				Embedding:  embeddingHandle(in, "embedding"),
				TopK:       in.Int("number_of_results", milvusretriever.DefaultTopK),
			})
			if err != nil {
				return nil, err
			}
			docs, err := r.Retrieve(ctx, query)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(docsToDataList(docs)), nil
		},
	}
}

func redisIndexerBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "redis_indexer",
			DisplayName: "Redis",
			Description: "Embed records and store them in a Redis vector index.",
			Kind:        components.ComponentOfIndexer,
			Inputs: []components.Field{
				{Name: "client", DisplayName: "Client", Type: components.FieldTypeHandle, Required: true,
					Options: []string{"RedisClient"}},
				{Name: "index_name", DisplayName: "Index Name", Type: components.FieldTypeStr,
					Default: redisindexer.DefaultIndexName},
				{Name: "embedding", DisplayName: "Embedding", Type: components.FieldTypeHandle,
					Required: true, Options: []string{"Embeddings"}},
				{Name: "ingest_data", DisplayName: "Ingest Data", Type: components.FieldTypeHandle,
					Required: true, Options: []string{string(EnvelopeData), string(EnvelopeDataList)}},
			},
			Outputs: []components.Output{
				{Name: "ids", DisplayName: "Stored IDs", Types: []string{string(EnvelopeData)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			cli, _ := in["client"].(*redis.Client)
			idx, err := redisindexer.NewIndexer(ctx, &redisindexer.IndexerConfig{
				Client:    cli,
				IndexName: in.String("index_name"),
				Embedding: embeddingHandle(in, "embedding"),
			})
			if err != nil {
				return nil, err
			}
			ids, err := idx.Store(ctx, docsFromInputs(in, "ingest_data"))
			if err != nil {
				return nil, err
			}
			return NewDataEnvelope(schema.NewData(map[string]any{"ids": ids})), nil
		},
	}
}

func redisRetrieverBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "redis_retriever",
			DisplayName: "Redis Search",
			Description: "Search a Redis vector index for similar records.",
			Kind:        components.ComponentOfRetriever,
			Inputs: []components.Field{
				{Name: "client", DisplayName: "Client", Type: components.FieldTypeHandle, Required: true,
					Options: []string{"RedisClient"}},
				{Name: "index_name", DisplayName: "Index Name", Type: components.FieldTypeStr,
					Default: redisretriever.DefaultIndexName},
				{Name: "embedding", DisplayName: "Embedding", Type: components.FieldTypeHandle,
					Required: true, Options: []string{"Embeddings"}},
				{Name: "query", DisplayName: "Query", Type: components.FieldTypeMultiline, Required: true},
				{Name: "number_of_results", DisplayName: "Number of Results", Type: components.FieldTypeInt,
					Default: redisretriever.DefaultTopK, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "results", DisplayName: "Results", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			query, err := in.RequireString("query")
			if err != nil {
				return nil, err
			}

			cli, _ := in["client"].(*redis.Client)
			r, err := redisretriever.NewRetriever(ctx, &redisretriever.RetrieverConfig{
				Client:    cli,
				IndexName: in.String("index_name"),
				Embedding: embeddingHandle(in, "embedding"),
				TopK:      in.Int("number_of_results", redisretriever.DefaultTopK),
			})
			if err != nil {
				return nil, err
			}
			docs, err := r.Retrieve(ctx, query)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(docsToDataList(docs)), nil
		},
	}
}

func pgvectorIndexerBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "pgvector_indexer",
			DisplayName: "PGVector",
			Description: "Embed records and store them in a pgvector table.",
			Kind:        components.ComponentOfIndexer,
			Inputs: []components.Field{
				{Name: "pool", DisplayName: "Connection Pool", Type: components.FieldTypeHandle, Required: true,
					Options: []string{"PostgresPool"}},
				{Name: "table", DisplayName: "Table", Type: components.FieldTypeStr,
					Default: pgvecindexer.DefaultTable},
				{Name: "embedding", DisplayName: "Embedding", Type: components.FieldTypeHandle,
					Required: true, Options: []string{"Embeddings"}},
				{Name: "ingest_data", DisplayName: "Ingest Data", Type: components.FieldTypeHandle,
					Required: true, Options: []string{string(EnvelopeData), string(EnvelopeDataList)}},
			},
			Outputs: []components.Output{
				{Name: "ids", DisplayName: "Stored IDs", Types: []string{string(EnvelopeData)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			pool, _ := in["pool"].(*pgxpool.Pool)
			idx, err := pgvecindexer.NewIndexer(ctx, &pgvecindexer.IndexerConfig{
				Pool:      pool,
				Table:     in.String("table"),
				Embedding: embeddingHandle(in, "embedding"),
			})
			if err != nil {
				return nil, err
			}
			ids, err := idx.Store(ctx, docsFromInputs(in, "ingest_data"))
			if err != nil {
				return nil, err
			}
			return NewDataEnvelope(schema.NewData(map[string]any{"ids": ids})), nil
		},
	}
}

func pgvectorRetrieverBuilder() Builder {
	return Builder{
		Descriptor: components.Descriptor{
			Name:        "pgvector_retriever",
			DisplayName: "PGVector Search",
			Description: "Search a pgvector table for similar records.",
			Kind:        components.ComponentOfRetriever,
			Inputs: []components.Field{
				{Name: "pool", DisplayName: "Connection Pool", Type: components.FieldTypeHandle, Required: true,
					Options: []string{"PostgresPool"}},
				{Name: "table", DisplayName: "Table", Type: components.FieldTypeStr,
					Default: pgvecretriever.DefaultTable},
				{Name: "embedding", DisplayName: "Embedding", Type: components.FieldTypeHandle,
					Required: true, Options: []string{"Embeddings"}},
				{Name: "query", DisplayName: "Query", Type: components.FieldTypeMultiline, Required: true},
				{Name: "number_of_results", DisplayName: "Number of Results", Type: components.FieldTypeInt,
					Default: pgvecretriever.DefaultTopK, Advanced: true},
			},
			Outputs: []components.Output{
				{Name: "results", DisplayName: "Results", Types: []string{string(EnvelopeDataList)}},
			},
		},
		Build: func(ctx context.Context, in components.Inputs) (*Envelope, error) {
			query, err := in.RequireString("query")
			if err != nil {
				return nil, err
			}

			pool, _ := in["pool"].(*pgxpool.Pool)
			r, err := pgvecretriever.NewRetriever(ctx, &pgvecretriever.RetrieverConfig{
				Pool:      pool,
				Table:     in.String("table"),
				Embedding: embeddingHandle(in, "embedding"),
				TopK:      in.Int("number_of_results", pgvecretriever.DefaultTopK),
			})
			if err != nil {
				return nil, err
			}
			docs, err := r.Retrieve(ctx, query)
			if err != nil {
				return nil, err
			}
			return NewDataListEnvelope(docsToDataList(docs)), nil
		},
	}
}

// chatOptions 从输入字段派生聊天模型的运行时选项。
func chatOptions(in components.Inputs) []model.Option {
	var opts []model.Option
	if _, ok := in["temperature"]; ok {
		opts = append(opts, model.WithTemperature(in.Float("temperature", 0)))
	}
	return opts
}
