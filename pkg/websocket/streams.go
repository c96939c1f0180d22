package websocket

// Symbol list meaning every market.
var allSymbols = []string{"$all"}

// SubscribeTrades streams individual trades.
func (m *Manager) SubscribeTrades(symbols []string, h Handler) error {
	return m.Subscribe("trades", symbols, "", h)
}

// SubscribeMarketDiff streams order book depth updates.
func (m *Manager) SubscribeMarketDiff(symbols []string, h Handler) error {
	return m.Subscribe("marketDiff", symbols, "", h)
}

// SubscribeMarketDepth streams the top 20 levels of bids and asks.
func (m *Manager) SubscribeMarketDepth(symbols []string, h Handler) error {
	return m.Subscribe("marketDepth", symbols, "", h)
}

// SubscribeKline streams candlestick updates for interval (1m ... 1M).
func (m *Manager) SubscribeKline(interval string, symbols []string, h Handler) error {
	return m.Subscribe("kline_"+interval, symbols, "", h)
}

// SubscribeTicker streams 24 hour statistics of the given symbols.
func (m *Manager) SubscribeTicker(symbols []string, h Handler) error {
	return m.Subscribe("ticker", symbols, "", h)
}

// SubscribeAllTickers streams 24 hour statistics of every symbol.
func (m *Manager) SubscribeAllTickers(h Handler) error {
	return m.Subscribe("allTickers", allSymbols, "", h)
}

// SubscribeMiniTicker streams reduced ticker data of the given symbols.
func (m *Manager) SubscribeMiniTicker(symbols []string, h Handler) error {
	return m.Subscribe("miniTicker", symbols, "", h)
}

// SubscribeAllMiniTickers streams reduced ticker data of every symbol.
func (m *Manager) SubscribeAllMiniTickers(h Handler) error {
	return m.Subscribe("allMiniTickers", allSymbols, "", h)
}

// SubscribeBlockHeight streams the latest block height.
func (m *Manager) SubscribeBlockHeight(h Handler) error {
	return m.Subscribe("blockheight", allSymbols, "", h)
}

// SubscribeOrders streams order updates of address.
func (m *Manager) SubscribeOrders(address string, h Handler) error {
	return m.Subscribe("orders", nil, address, h)
}

// SubscribeAccounts streams balance updates of address.
func (m *Manager) SubscribeAccounts(address string, h Handler) error {
	return m.Subscribe("accounts", nil, address, h)
}

// SubscribeTransfers streams transfers to and from address.
func (m *Manager) SubscribeTransfers(address string, h Handler) error {
	return m.Subscribe("transfers", nil, address, h)
}
