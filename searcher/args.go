package searcher

// Search defaults

const DefaultDepth = 3 // plies
