package seed

import stocksusecase "brokerage_backend/internal/feature/stocks/usecase"

// Demo account credentials.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
	DemoBalance  = 1_000_000.0
)

// nseStocks and bseStocks are the reference listings loaded into an empty catalogue.
var nseStocks = []stocksusecase.StockInput{
	{Symbol: "RELIANCE", Name: "Reliance Industries Ltd.", CurrentPrice: 2587.45, DayHigh: 2610.75, DayLow: 2570.20},
	{Symbol: "TCS", Name: "Tata Consultancy Services Ltd.", CurrentPrice: 3645.80, DayHigh: 3680.25, DayLow: 3630.50},
	{Symbol: "HDFCBANK", Name: "HDFC Bank Ltd.", CurrentPrice: 1678.20, DayHigh: 1695.10, DayLow: 1665.75},
	{Symbol: "INFY", Name: "Infosys Ltd.", CurrentPrice: 1524.65, DayHigh: 1540.30, DayLow: 1511.80},
	{Symbol: "ICICIBANK", Name: "ICICI Bank Ltd.", CurrentPrice: 872.35, DayHigh: 885.90, DayLow: 868.15},
	{Symbol: "HINDUNILVR", Name: "Hindustan Unilever Ltd.", CurrentPrice: 2385.60, DayHigh: 2410.25, DayLow: 2375.50},
	{Symbol: "BHARTIARTL", Name: "Bharti Airtel Ltd.", CurrentPrice: 865.75, DayHigh: 872.40, DayLow: 858.20},
	{Symbol: "ITC", Name: "ITC Ltd.", CurrentPrice: 423.85, DayHigh: 428.40, DayLow: 420.60},
	{Symbol: "SBIN", Name: "State Bank of India", CurrentPrice: 568.40, DayHigh: 575.20, DayLow: 562.75},
	{Symbol: "BAJFINANCE", Name: "Bajaj Finance Ltd.", CurrentPrice: 6983.25, DayHigh: 7045.80, DayLow: 6950.40},
	{Symbol: "AXISBANK", Name: "Axis Bank Ltd.", CurrentPrice: 943.60, DayHigh: 955.30, DayLow: 938.75},
	{Symbol: "WIPRO", Name: "Wipro Ltd.", CurrentPrice: 447.50, DayHigh: 452.80, DayLow: 445.20},
	{Symbol: "HCLTECH", Name: "HCL Technologies Ltd.", CurrentPrice: 1185.30, DayHigh: 1198.65, DayLow: 1177.90},
	{Symbol: "KOTAKBANK", Name: "Kotak Mahindra Bank Ltd.", CurrentPrice: 1724.45, DayHigh: 1740.80, DayLow: 1715.30},
	{Symbol: "LT", Name: "Larsen & Toubro Ltd.", CurrentPrice: 2836.75, DayHigh: 2865.20, DayLow: 2820.40},
	{Symbol: "TATASTEEL", Name: "Tata Steel Ltd.", CurrentPrice: 143.25, DayHigh: 145.80, DayLow: 141.60},
	{Symbol: "MARUTI", Name: "Maruti Suzuki India Ltd.", CurrentPrice: 10458.90, DayHigh: 10580.45, DayLow: 10390.75},
	{Symbol: "SUNPHARMA", Name: "Sun Pharmaceutical Industries Ltd.", CurrentPrice: 1287.65, DayHigh: 1305.30, DayLow: 1275.40},
	{Symbol: "BAJAJFINSV", Name: "Bajaj Finserv Ltd.", CurrentPrice: 1625.80, DayHigh: 1645.25, DayLow: 1615.50},
	{Symbol: "ASIANPAINT", Name: "Asian Paints Ltd.", CurrentPrice: 3142.55, DayHigh: 3175.90, DayLow: 3125.30},
	{Symbol: "TITAN", Name: "Titan Company Ltd.", CurrentPrice: 3278.40, DayHigh: 3315.75, DayLow: 3260.15},
	{Symbol: "ADANIPORTS", Name: "Adani Ports and Special Economic Zone Ltd.", CurrentPrice: 843.25, DayHigh: 855.80, DayLow: 835.60},
	{Symbol: "ADANIENT", Name: "Adani Enterprises Ltd.", CurrentPrice: 2476.35, DayHigh: 2510.90, DayLow: 2455.80},
	{Symbol: "NTPC", Name: "NTPC Ltd.", CurrentPrice: 293.75, DayHigh: 297.40, DayLow: 291.25},
	{Symbol: "POWERGRID", Name: "Power Grid Corporation of India Ltd.", CurrentPrice: 283.45, DayHigh: 287.80, DayLow: 281.20},
	{Symbol: "ONGC", Name: "Oil and Natural Gas Corporation Ltd.", CurrentPrice: 234.85, DayHigh: 238.30, DayLow: 232.50},
	{Symbol: "BPCL", Name: "Bharat Petroleum Corporation Ltd.", CurrentPrice: 583.20, DayHigh: 590.75, DayLow: 578.40},
	{Symbol: "COALINDIA", Name: "Coal India Ltd.", CurrentPrice: 392.65, DayHigh: 398.30, DayLow: 389.20},
	{Symbol: "TATAMOTORS", Name: "Tata Motors Ltd.", CurrentPrice: 932.40, DayHigh: 945.85, DayLow: 925.10},
	{Symbol: "BRITANNIA", Name: "Britannia Industries Ltd.", CurrentPrice: 4875.30, DayHigh: 4925.80, DayLow: 4845.60},
}

var bseStocks = []stocksusecase.StockInput{
	{Symbol: "RPOWER", Name: "Reliance Power Ltd.", CurrentPrice: 22.35, DayHigh: 22.95, DayLow: 22.10},
	{Symbol: "YESBANK", Name: "Yes Bank Ltd.", CurrentPrice: 18.75, DayHigh: 19.20, DayLow: 18.45},
	{Symbol: "SUZLON", Name: "Suzlon Energy Ltd.", CurrentPrice: 35.40, DayHigh: 36.10, DayLow: 35.05},
	{Symbol: "IDEA", Name: "Vodafone Idea Ltd.", CurrentPrice: 12.85, DayHigh: 13.20, DayLow: 12.65},
	{Symbol: "ZEEL", Name: "Zee Entertainment Enterprises Ltd.", CurrentPrice: 282.60, DayHigh: 287.40, DayLow: 280.15},
	{Symbol: "PNB", Name: "Punjab National Bank", CurrentPrice: 82.75, DayHigh: 84.30, DayLow: 81.90},
	{Symbol: "BANKBARODA", Name: "Bank of Baroda", CurrentPrice: 217.45, DayHigh: 220.80, DayLow: 215.30},
	{Symbol: "IRCTC", Name: "Indian Railway Catering and Tourism Corporation Ltd.", CurrentPrice: 745.85, DayHigh: 755.40, DayLow: 740.20},
	{Symbol: "INDIGO", Name: "InterGlobe Aviation Ltd.", CurrentPrice: 3245.65, DayHigh: 3285.30, DayLow: 3225.10},
	{Symbol: "HEROMOTOCO", Name: "Hero MotoCorp Ltd.", CurrentPrice: 4372.80, DayHigh: 4420.45, DayLow: 4350.30},
}

// catalogue returns every seed listing with its exchange filled in.
func catalogue() []stocksusecase.StockInput {
	out := make([]stocksusecase.StockInput, 0, len(nseStocks)+len(bseStocks))
	for _, s := range nseStocks {
		s.Exchange = "NSE"
		out = append(out, s)
	}
	for _, s := range bseStocks {
		s.Exchange = "BSE"
		out = append(out, s)
	}
	return out
}
