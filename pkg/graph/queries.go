package graph

// saveContentCypher upserts the category, subcategory and tag nodes, creates
// one new Content node (never deduplicated on text) and links everything
// with fixed relationship types. Append-only: there is no update or delete
// path for content.
const saveContentCypher = `
MERGE (cat:Category {name: $category})
WITH cat
MERGE (subcat:SubCategory {name: $subcategory})
MERGE (subcat)-[:CHILD_OF]->(cat)
WITH cat, subcat
CREATE (c:Content {
    id: randomUUID(),
    text: $text,
    textEmbedding: $embedding,
    createdAt: datetime(),
    updatedAt: datetime()
})
MERGE (c)-[:BELONGS_TO]->(cat)
MERGE (c)-[:SUBCATEGORIZED_AS]->(subcat)
WITH c
FOREACH (tagName IN $tags |
    MERGE (t:Tag {name: tagName})
    MERGE (c)-[:TAGGED_WITH]->(t)
)
RETURN c.id as contentId
`
