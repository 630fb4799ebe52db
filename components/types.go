package components

// Component 表示组件类型。
type Component string

const (
	// ComponentOfPrompt 提示词模板组件，用于动态生成和格式化提示词
	ComponentOfPrompt Component = "Prompt"
	// ComponentOfChatModel 聊天模型组件，用于对话生成
	ComponentOfChatModel Component = "ChatModel"
	// ComponentOfEmbedding 嵌入模型组件，用于文本向量化
	ComponentOfEmbedding Component = "Embedding"
	// ComponentOfIndexer 索引器组件，用于写入向量存储
	ComponentOfIndexer Component = "Indexer"
	// ComponentOfRetriever 检索器组件，用于相似度搜索
	ComponentOfRetriever Component = "Retriever"
	// ComponentOfLoader 加载器组件，用于从数据源加载记录
	ComponentOfLoader Component = "Loader"
	// ComponentOfTool 工具组件，供模型以函数形式调用
	ComponentOfTool Component = "Tool"
	// ComponentOfSearch 搜索组件，用于查询外部搜索服务
	ComponentOfSearch Component = "Search"
	// ComponentOfTranscription 转写组件，用于音频转文字
	ComponentOfTranscription Component = "Transcription"
)
