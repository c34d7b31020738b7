package constants

const USER_AGENT = "brawltools/0.1.0 (+https://github.com/Amund211/brawltools)"

const DEFAULT_API_URL = "https://api.brawltools.com"
